package platform

import (
	"context"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Family is the coarse operating-system classification that selects a
// reachability-command syntax.
type Family int

const (
	FamilyOther Family = iota
	FamilyPOSIX
	FamilyWindows
)

func (f Family) String() string {
	switch f {
	case FamilyPOSIX:
		return "posix"
	case FamilyWindows:
		return "windows"
	default:
		return "other"
	}
}

// helperTimeout bounds every helper-utility invocation in this package.
const helperTimeout = 5 * time.Second

// CommandRunner executes a helper utility and returns its trimmed
// standard output. Implementations are expected to bound the run.
type CommandRunner interface {
	Output(name string, args ...string) (string, error)
}

type execRunner struct {
	timeout time.Duration
}

func (r execRunner) Output(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// helperResult is the outcome of a best-effort helper call. Failures
// never escape this package; they select a fallback string instead.
type helperResult struct {
	ok     bool
	detail string
}

func runHelper(runner CommandRunner, name string, args ...string) helperResult {
	out, err := runner.Output(name, args...)
	if err != nil {
		return helperResult{ok: false, detail: err.Error()}
	}
	return helperResult{ok: true, detail: out}
}

// Info describes the host platform. Compute it once at startup with
// Detect and pass it by value; it never changes for the process lifetime.
type Info struct {
	Family Family

	// release is the kernel release captured at detection time, kept as
	// a fallback for when the utility stops answering later.
	release string

	// version is the raw platform version string on Windows, feeding the
	// build-number classification.
	version string

	runner CommandRunner
}

// Detect classifies the host and caches best-effort release/version
// strings for later display.
func Detect() Info {
	return detect(execRunner{timeout: helperTimeout})
}

func detect(runner CommandRunner) Info {
	info := Info{Family: classifyGOOS(runtime.GOOS), runner: runner}

	switch info.Family {
	case FamilyPOSIX:
		if res := runHelper(runner, "uname", "-r"); res.ok {
			info.release = res.detail
		}
	case FamilyWindows:
		if res := runHelper(runner, "cmd", "/c", "ver"); res.ok {
			info.version = extractVersion(res.detail)
		}
	}

	return info
}

func classifyGOOS(goos string) Family {
	switch goos {
	case "windows":
		return FamilyWindows
	case "linux", "darwin", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix":
		return FamilyPOSIX
	default:
		return FamilyOther
	}
}

// KernelVersion renders the host kernel or OS release for display. On
// POSIX it asks the kernel-version utility, falling back to the release
// captured at detection time. On Windows it classifies the build number.
func (i Info) KernelVersion() string {
	switch i.Family {
	case FamilyPOSIX:
		if res := runHelper(i.runner, "uname", "-r"); res.ok {
			return res.detail
		}
		if i.release != "" {
			return i.release
		}
		return "Unknown"
	case FamilyWindows:
		return classifyBuild(i.version)
	default:
		return "Unknown"
	}
}

// Distribution renders the OS distribution for display. On POSIX it asks
// lsb_release, degrading to "Unknown Linux" when the utility is missing,
// failing, or slow. Windows reuses the build classification.
func (i Info) Distribution() string {
	switch i.Family {
	case FamilyPOSIX:
		if res := runHelper(i.runner, "lsb_release", "-i", "-s"); res.ok {
			return res.detail
		}
		return "Unknown Linux"
	case FamilyWindows:
		return classifyBuild(i.version)
	default:
		return "Unknown"
	}
}

// classifyBuild maps a dotted Windows version string to a release label
// by its trailing build component. Builds from 22000 up shipped as
// Windows 11.
func classifyBuild(version string) string {
	parts := strings.Split(version, ".")
	build, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return "Windows"
	}

	if build >= 22000 {
		return "Windows 11 (Build " + strconv.Itoa(build) + ")"
	}
	return "Windows 10 (Build " + strconv.Itoa(build) + ")"
}

// extractVersion pulls the dotted version out of `cmd /c ver` output,
// e.g. "Microsoft Windows [Version 10.0.22631.2861]" -> "10.0.22631".
// The version is trimmed to major.minor.build so the build number stays
// the trailing component.
func extractVersion(raw string) string {
	start := strings.IndexAny(raw, "0123456789")
	if start < 0 {
		return strings.TrimSpace(raw)
	}

	end := start
	for end < len(raw) && (raw[end] == '.' || (raw[end] >= '0' && raw[end] <= '9')) {
		end++
	}

	parts := strings.Split(raw[start:end], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ".")
}
