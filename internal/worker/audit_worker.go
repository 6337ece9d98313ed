package worker

import (
	"github.com/shopline/catalog-service/internal/service"
)

// StartAuditWorker registers the audit log subscriber.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
