package worker

import (
	"github.com/spec-kit/rma-portal/internal/service"
)

// StartActivityWorker registers the activity-log event handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
