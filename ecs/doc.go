// Package ecs provides ECS adapters for spotlight's selection events.
//
// The primary adapter is [NewDonburiStore], which bridges region selections
// into a [Donburi] world as typed events. Subscribe to [SelectionEventType]
// in your ECS systems to receive them.
//
// Usage:
//
//	stage.SetEventSink(ecs.NewDonburiStore(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
