package events

// EventPublisherAdapter lets packages that cannot import events (processor) publish
// through an untyped interface.
type EventPublisherAdapter struct {
	bus Publisher
}

func NewEventPublisherAdapter(bus Publisher) *EventPublisherAdapter {
	return &EventPublisherAdapter{bus: bus}
}

// Publish forwards values that are events and drops anything else.
func (a *EventPublisherAdapter) Publish(event interface{}) {
	if e, ok := event.(Event); ok {
		a.bus.Publish(e)
	}
}
