// Command smsforward bridges a GSM modem's SIM inbox to a single phone
// number: every new SMS not sent from that number is relayed to it, and
// messages sent from it are interpreted as ++COMMAND control messages.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dsamersoff/smsforward/forward"
	"github.com/dsamersoff/smsforward/internal/logging"
	"github.com/dsamersoff/smsforward/modem"
	"github.com/dsamersoff/smsforward/options"
)

// Version is the daemon's version string, reported by the "version" runtime
// option. It is not written to the log.
const Version = "1.0.0"

const (
	exitSuccess = 0
	exitUsage   = 7
	exitRuntime = -1
)

const pollInterval = 5 * time.Second

// daemonizeEnv marks a process as the already-detached child spawned by -D,
// so it does not re-daemonize itself.
const daemonizeEnv = "SMSFORWARD_DAEMONIZED"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		dest     = flag.String("a", "", "override destination phone number")
		command  = flag.String("c", "", "run a single ++COMMAND and exit")
		device   = flag.String("p", "/dev/ttyUSB0", "serial device")
		verbose  = flag.Int("v", logging.Notice, "verbosity 0..7")
		daemon   = flag.Bool("D", false, "daemonize")
		kill     = flag.Bool("K", false, "kill the running daemon via its PID file")
		useSyslog = flag.Bool("L", false, "duplicate logs to syslog")
	)
	flag.Parse()

	progname := filepath.Base(os.Args[0])
	pidPath := filepath.Join("/var/run", progname+".pid")

	if *kill {
		if err := killRunning(pidPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitRuntime
		}
		return exitSuccess
	}

	if *daemon && *command != "" {
		fmt.Fprintln(os.Stderr, "usage: -D and -c are mutually exclusive")
		return exitUsage
	}
	if *verbose < 0 || *verbose > 7 {
		fmt.Fprintln(os.Stderr, "usage: -v must be in 0..7")
		return exitUsage
	}

	log, err := logging.New(*verbose, *useSyslog, progname)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntime
	}
	defer log.Sync() //nolint:errcheck

	if *daemon && os.Getenv(daemonizeEnv) == "" {
		if err := daemonize(pidPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitRuntime
		}
		return exitSuccess
	}
	if *daemon {
		if err := writePIDFile(pidPath, os.Getpid()); err != nil {
			log.Errorf("writing pid file: %v", err)
			return exitRuntime
		}
		defer os.Remove(pidPath)
	}

	installFaultHandler(log)

	dev := &modem.Device{Path: *device}
	if err := dev.Open(); err != nil {
		log.Errorf("opening %s: %v", *device, err)
		return exitRuntime
	}
	defer dev.Close()

	opts := options.New(Version)
	opts.SetVerbosity(*verbose)

	driver := forward.NewDriver(dev, opts, log)
	if err := driver.FlowSetup(*dest); err != nil {
		log.Errorf("flow setup: %v", err)
		return exitRuntime
	}

	if *command != "" {
		return runSingleCommand(driver, log, *command)
	}

	return runLoop(driver, log)
}

func runSingleCommand(driver *forward.Driver, log *logging.Logger, command string) int {
	if !driver.RunCommand(command) {
		log.Warnf("command %q was not recognised", command)
	}
	return exitSuccess
}

func runLoop(driver *forward.Driver, log *logging.Logger) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigCh:
			log.Infof("received %v, exiting", sig)
			return exitSuccess
		case <-ticker.C:
			if err := driver.Flow(); err != nil {
				log.Warnf("flow: %v; re-running flow setup", err)
				if err := driver.FlowSetup(""); err != nil {
					log.Errorf("flow setup: %v", err)
				}
			}
		}
	}
}

// installFaultHandler prints a fault banner (goroutine stack trace in place
// of the original's register dump and symbolic backtrace, which Go's
// runtime does not expose to a signal handler) then re-raises the signal
// with its default disposition, matching a Unix crash handler's behavior.
func installFaultHandler(log *logging.Logger) {
	faultCh := make(chan os.Signal, 1)
	signal.Notify(faultCh, syscall.SIGILL, syscall.SIGSEGV, syscall.SIGBUS, syscall.SIGFPE)
	go func() {
		sig := <-faultCh
		log.Errorf("fatal signal: %v\n%s", sig, debug.Stack())
		signal.Reset(sig)
		syscall.Kill(os.Getpid(), sig.(syscall.Signal)) //nolint:errcheck
	}()
}

func daemonize(pidPath string) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), daemonizeEnv+"=1")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	return writePIDFile(pidPath, cmd.Process.Pid)
}

func writePIDFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o644)
}

func killRunning(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading pid file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return fmt.Errorf("parsing pid file: %w", err)
	}
	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		return fmt.Errorf("killing pid %d: %w", pid, err)
	}
	return os.Remove(path)
}
