package service

import (
	"github.com/rs/zerolog"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/pkg/metrics"
)

// observe records the outcome of one service operation. Failures are logged
// at a level matching their kind; store failures always reach Error.
func observe(log zerolog.Logger, entity, op string, err error) {
	kind := domain.KindOf(err)
	metrics.OperationsTotal.WithLabelValues(entity, op, kind).Inc()
	if err == nil {
		return
	}

	var ev *zerolog.Event
	switch kind {
	case "internal":
		ev = log.Error()
	case "not_found":
		ev = log.Debug()
	default:
		ev = log.Warn()
	}
	ev.Err(err).Str("op", op).Msg(entity + " operation failed")
}
