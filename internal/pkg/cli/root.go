package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/dsascode/dsc/internal/pkg/build"
	"github.com/dsascode/dsc/internal/pkg/cmdrun"
	"github.com/dsascode/dsc/internal/pkg/env"
	"github.com/dsascode/dsc/internal/pkg/fetcher"
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/interaction"
	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/manifest"
	"github.com/dsascode/dsc/internal/pkg/options"
	"github.com/dsascode/dsc/internal/pkg/project"
	"github.com/dsascode/dsc/internal/pkg/version"
)

const description = `
Data Science CLI

Scaffold and operate a data-science project
from your local machine or CI pipeline.

Start by running the "init" sub-command in a new empty directory.
The directory skeleton, env files and version control will be prepared.
`

type rootCommand struct {
	cmd          *cobra.Command
	fsFactory    filesystem.Factory
	fs           filesystem.Fs       // filesystem abstraction
	envs         *env.Map            // ENVs from OS
	options      *options.Options    // parsed flags and env variables
	prompt       *interaction.Prompt // user interaction
	ctx          context.Context     // context for operations
	start        time.Time           // cmd start time
	initialized  bool                // init method was called
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	logFile      *log.File  // log file instance
	logger       log.Logger // log to console and logFile
	runner       *cmdrun.Runner
	fetcher      *fetcher.Fetcher
	manifestInst *manifest.Manifest // lazy loaded, see ProjectManifest
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer, prompt *interaction.Prompt, envs *env.Map, fsFactory filesystem.Factory) *rootCommand {
	root := &rootCommand{
		fsFactory: fsFactory,
		envs:      envs,
		options:   options.NewOptions(),
		prompt:    prompt,
		ctx:       context.Background(),
		start:     time.Now(),
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
	}

	// Command definition
	root.cmd = &cobra.Command{
		Use:          path.Base(os.Args[0]), // name of the binary
		Version:      version.Version(),
		Short:        description,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no command specified
			return root.cmd.Help()
		},
	}

	// Setup in/out
	root.cmd.SetIn(stdin)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	// Setup templates
	root.cmd.SetVersionTemplate("{{.Version}}")

	// Persistent flags for all sub-commands
	flags := root.cmd.PersistentFlags()
	flags.SortFlags = true
	flags.BoolP("help", "h", false, "print help for command")
	flags.StringP("log-file", "l", "", "path to a log file for details")
	flags.StringP("working-dir", "d", "", "use other working directory")
	flags.BoolP("verbose", "v", false, "print details")
	flags.BoolP("non-interactive", "", false, "disable prompts, use default values")

	// Root command flags
	root.cmd.Flags().SortFlags = true
	root.cmd.Flags().BoolP("version", "V", false, "print version")

	// Init when flags are parsed
	root.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := root.init(cmd); err != nil {
			return err
		}

		// Check the latest released version, an error must not block the command
		checker := version.NewGitHubChecker(root.ctx, root.logger, root.envs)
		if err := checker.CheckIfLatest(build.BuildVersion); err != nil {
			root.logger.Debugf(`Version check: %s.`, err)
		}

		return nil
	}

	// Sub-commands
	root.cmd.AddCommand(
		initCommand(root),
		checkCommand(root),
		dataCommand(root),
		runCommand(root),
		statusCommand(root),
		cleanCommand(root),
	)

	return root
}

// Execute command or sub-command, returns the process exit code.
func (root *rootCommand) Execute() (exitCode int) {
	defer func() {
		exitCode = root.tearDown(exitCode)
	}()

	if err := root.cmd.Execute(); err != nil {
		// Propagate exit code of a delegated task
		var exitErr *cmdrun.ExitError
		if errors.As(err, &exitErr) {
			root.logError(err)
			return exitErr.Code
		}
		root.logError(err)
		return 1
	}
	return 0
}

// init sets up the logger, filesystem and options, when the flags are parsed.
func (root *rootCommand) init(cmd *cobra.Command) (err error) {
	if root.initialized {
		// Flags belong to the executed sub-command
		return root.options.Load(root.logger, root.envs, root.fs, cmd.Flags())
	}

	flags := cmd.Flags()

	// Setup log file
	logFilePath, _ := flags.GetString("log-file")
	if root.logFile, err = log.NewLogFile(logFilePath); err != nil {
		return fmt.Errorf(`cannot open log file: %w`, err)
	}

	// Setup logger
	verbose, _ := flags.GetBool("verbose")
	root.logger = log.NewCliLogger(root.stdout, root.stderr, root.logFile, verbose)
	root.logger.Debugf(`Version: %s`, log.Sanitize(version.Version()))
	root.logger.Debugf(`Running command %v`, os.Args)

	// Disable prompts if requested
	if nonInteractive, _ := flags.GetBool("non-interactive"); nonInteractive {
		root.prompt.SetInteractive(false)
	}

	// Setup filesystem, it finds the project dir from the working dir
	workingDir, _ := flags.GetString("working-dir")
	if root.fs, err = root.fsFactory(root.logger, workingDir); err != nil {
		return err
	}

	// Load values from flags and ENVs
	if err = root.options.Load(root.logger, root.envs, root.fs, flags); err != nil {
		return err
	}
	root.logger.Debug(root.options.Dump())

	// External commands run in the project dir
	root.runner = cmdrun.New(root.logger, root.fs.BasePath())

	// Progress bar only on an interactive terminal
	root.fetcher = fetcher.New(root.logger).WithProgress(root.prompt.IsInteractive() && !verbose)

	root.initialized = true
	return nil
}

// tearDown does the final cleanup, the temp log file is removed, if no error occurred.
func (root *rootCommand) tearDown(exitCode int) int {
	if root.logFile == nil {
		return exitCode
	}

	errorOccurred := exitCode != 0
	if errorOccurred && root.logFile.IsTemp() && root.logger != nil {
		root.logger.Infof(`Details can be found in the log file "%s".`, root.logFile.Path())
	}

	if root.logger != nil {
		_ = root.logger.Sync()
	}
	root.logFile.TearDown(errorOccurred)
	root.logFile = nil
	return exitCode
}

func (root *rootCommand) logError(err error) {
	if root.logger == nil {
		fmt.Fprintln(root.stderr, err.Error())
		return
	}
	root.logger.Errorf(`%s`, err.Error())
}

// Dependencies for the operations.

func (root *rootCommand) Logger() log.Logger {
	return root.logger
}

func (root *rootCommand) Fs() filesystem.Fs {
	return root.fs
}

func (root *rootCommand) Runner() *cmdrun.Runner {
	return root.runner
}

func (root *rootCommand) Fetcher() *fetcher.Fetcher {
	return root.fetcher
}

func (root *rootCommand) Stdin() io.Reader {
	return root.stdin
}

func (root *rootCommand) Stdout() io.Writer {
	return root.stdout
}

func (root *rootCommand) Stderr() io.Writer {
	return root.stderr
}

// ProjectManifest loads the manifest once, the project dir must exist.
func (root *rootCommand) ProjectManifest() (*manifest.Manifest, error) {
	if root.manifestInst != nil {
		return root.manifestInst, nil
	}

	if err := project.ValidateMetadataFound(root.fs); err != nil {
		return nil, err
	}

	m, err := manifest.Load(root.fs)
	if err != nil {
		return nil, err
	}

	root.manifestInst = m
	return m, nil
}

// LoadProject with a lock, the caller must call the returned unlock function.
func (root *rootCommand) LoadProject() (*project.Project, func(), error) {
	p, err := project.Load(root.fs)
	if err != nil {
		return nil, nil, err
	}

	if err := p.Lock(root.logger); err != nil {
		return nil, nil, err
	}

	unlock := func() {
		p.Unlock(root.logger)
	}
	return p, unlock, nil
}
