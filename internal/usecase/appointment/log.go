package appointment

import (
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// logFailure logs business rejections at warn and everything else at error.
func logFailure(log *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if httperr.KindOf(err) == httperr.KindInternal {
		log.Error(msg, fields...)
		return
	}
	log.Warn(msg, fields...)
}
