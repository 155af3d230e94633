package kernel

import "runtime"

// HostDevice stands in for the handheld's ADC and memory counters when the
// shell runs on a development host. Voltage is fixed; zero selects a healthy
// default.
type HostDevice struct {
	Voltage float64
}

func (h HostDevice) BatteryVoltage() (float64, error) {
	if h.Voltage == 0 {
		return 4.05, nil
	}
	return h.Voltage, nil
}

func (h HostDevice) FreeRAM() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapIdle
}
