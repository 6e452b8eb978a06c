package platform

import "fmt"

type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("target platform not supported: %s", e.Platform)
}

func (*UnsupportedPlatformError) Is(target error) bool {
	_, ok := target.(*UnsupportedPlatformError)
	return ok
}

type UnsupportedArchError struct {
	OS   OS
	Arch Arch
}

func (e *UnsupportedArchError) Error() string {
	return fmt.Sprintf("architecture not supported on %s: %s", e.OS, e.Arch)
}

func (*UnsupportedArchError) Is(target error) bool {
	_, ok := target.(*UnsupportedArchError)
	return ok
}

type UnsupportedOSError struct {
	OS OS
}

func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf("os not supported: %s", e.OS)
}

func (*UnsupportedOSError) Is(target error) bool {
	_, ok := target.(*UnsupportedOSError)
	return ok
}
