package main

import (
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	mbp "go.notifydb.dev/core/mainboilerplate"
	"go.notifydb.dev/core/notifier"
	"go.notifydb.dev/core/notifydb"
	"go.notifydb.dev/core/registry"
)

const iniFilename = "notifybycwd.ini"

// Config is the top-level configuration object of notifybycwd.
var Config = new(struct {
	Base string `long:"base" env:"NOTIFYDB_BASE" default:"/tmp" description:"Base directory of the per-user registry layout"`

	Log mbp.LogConfig `group:"Logging" namespace:"log" env-namespace:"LOG"`

	Args struct {
		Path []string `positional-arg-name:"path" description:"Directory to match in addition to the working directory"`
	} `positional-args:"yes"`
})

func main() {
	var parser = flags.NewParser(Config, flags.Default)
	parser.Usage = "[OPTIONS] [path]"
	mbp.MustParseConfig(parser, iniFilename)
	mbp.InitLog(Config.Log)

	// At most one path argument. Reject surplus before touching the registry.
	if len(Config.Args.Path) > 1 {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	var who = notifydb.Identity(os.Getenv("LOGNAME"))
	if err := who.Validate(); err != nil {
		mbp.Must(notifydb.ExtendContext(err, "LOGNAME"), "invalid identity")
	}

	var err = run(notifydb.Layout{Base: Config.Base}, who, Config.Args.Path)
	switch {
	case err == nil:
		// Delivered. Exit zero.
	case err == registry.ErrNoWaiters || err == notifier.ErrNoListener:
		log.Info(err)
		os.Exit(1)
	default:
		log.WithField("err", err).Fatal("notification failed")
	}
}

// run performs one notification attempt: it resolves the candidate paths,
// scans the registry of |who| for the first covering record, and signals
// that record's FIFO. It returns nil only if the byte was delivered.
func run(layout notifydb.Layout, who notifydb.Identity, args []string) error {
	var candidates, err = resolveCandidates(args)
	if err != nil {
		return err
	}

	id, err := registry.Find(layout, who, candidates)
	if err != nil {
		return err
	}
	return notifier.Notify(layout, who, id)
}

// resolveCandidates canonicalizes the optional argument path and the working
// directory into the ordered candidate set. The argument, when present, is
// checked before the working directory within each scanned record.
func resolveCandidates(args []string) ([]string, error) {
	var cwd, err = os.Getwd()
	if err != nil {
		return nil, errors.WithMessage(err, "determining working directory")
	}
	if cwd, err = filepath.EvalSymlinks(cwd); err != nil {
		return nil, errors.WithMessage(err, "resolving working directory")
	}
	if len(args) == 0 {
		return []string{cwd}, nil
	}

	// filepath.Abs would resolve an empty argument to the working directory.
	if args[0] == "" {
		return nil, errors.Wrapf(unix.ENOENT, "resolving %q", args[0])
	}
	var arg string
	if arg, err = filepath.Abs(args[0]); err == nil {
		arg, err = filepath.EvalSymlinks(arg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %q", args[0])
	}
	return []string{arg, cwd}, nil
}
