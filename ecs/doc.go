// Package ecs provides ECS adapters for puppet.
//
// The primary adapter is [NewDonburiObserver], which forwards every pose
// edit a [puppet.Figure] applies into a [Donburi] world as a typed event.
// Subscribe to [PoseEditEventType] in your ECS systems to receive them.
//
// Usage:
//
//	fig.SetPoseObserver(ecs.NewDonburiObserver(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
