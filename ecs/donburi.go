package ecs

import (
	"github.com/phanxgames/puppet"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PoseEditEventType is the Donburi event type for puppet pose edits.
var PoseEditEventType = events.NewEventType[puppet.PoseEdit]()

type donburiObserver struct {
	world donburi.World
}

// NewDonburiObserver creates a PoseObserver backed by a Donburi world.
// Edits are published to PoseEditEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiObserver(world donburi.World) puppet.PoseObserver {
	return &donburiObserver{world: world}
}

func (o *donburiObserver) OnPoseEdit(edit puppet.PoseEdit) {
	PoseEditEventType.Publish(o.world, edit)
}
