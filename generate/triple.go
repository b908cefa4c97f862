package generate

import "runtime"

// HostTriple returns the LLVM target triple of the machine the compiler is
// running on.
func HostTriple() string {
	return Triple(runtime.GOARCH, runtime.GOOS)
}

// Triple converts a Go architecture and operating system pair into an LLVM
// target triple.  Unknown values are passed through.
func Triple(goarch, goos string) string {
	arch := goarch
	switch goarch {
	case "amd64":
		arch = "x86_64"
	case "386":
		arch = "i686"
	case "arm64":
		arch = "aarch64"
	}

	switch goos {
	case "linux":
		return arch + "-unknown-linux-gnu"
	case "darwin":
		return arch + "-apple-darwin"
	case "windows":
		return arch + "-pc-windows-msvc"
	case "freebsd":
		return arch + "-unknown-freebsd"
	}

	return arch + "-unknown-" + goos
}
