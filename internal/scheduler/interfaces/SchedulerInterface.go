package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	// Tick runs one submission now unless the previous one is still running.
	Tick()
}
