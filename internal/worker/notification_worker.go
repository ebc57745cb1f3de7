package worker

// Subscriber registers its handlers on the event dispatcher.
type Subscriber interface {
	RegisterHandlers()
}

// StartNotificationWorker registers event subscribers such as notifications, the activity
// feed and cache invalidation.
func StartNotificationWorker(subscribers ...Subscriber) {
	for _, s := range subscribers {
		if s == nil {
			continue
		}
		s.RegisterHandlers()
	}
}
