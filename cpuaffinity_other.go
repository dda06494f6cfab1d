//go:build !linux

package facecam

import "errors"

var errAffinityUnsupported = errors.New("CPU affinity is only supported on linux")

func SetCPUAffinity(cores []int) error {
	return errAffinityUnsupported
}

func GetCPUAffinity() ([]int, error) {
	return nil, errAffinityUnsupported
}
