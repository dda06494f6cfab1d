//go:build linux

package facecam

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// maxCPUs is the number of cores a unix.CPUSet can describe
const maxCPUs = 1024

// SetCPUAffinity pins the program to run on the given CPU core numbers, eg:
// []int{4,5,6,7}
func SetCPUAffinity(cores []int) error {

	var set unix.CPUSet
	set.Zero()

	for _, core := range cores {
		if core < 0 || core >= maxCPUs {
			return fmt.Errorf("invalid CPU core: %d", core)
		}

		set.Set(core)
	}

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("failed to set CPU affinity: %w", err)
	}

	return nil
}

// GetCPUAffinity returns the CPU core numbers the program is allowed to run on
func GetCPUAffinity() ([]int, error) {

	var set unix.CPUSet

	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("failed to get CPU affinity: %w", err)
	}

	cores := make([]int, 0, set.Count())

	for i := 0; i < maxCPUs; i++ {
		if set.IsSet(i) {
			cores = append(cores, i)
		}
	}

	return cores, nil
}
