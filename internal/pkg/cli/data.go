package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsascode/dsc/internal/pkg/interaction"
	"github.com/dsascode/dsc/internal/pkg/manifest"
	dataDownload "github.com/dsascode/dsc/pkg/lib/operation/data/download"
	dataFetch "github.com/dsascode/dsc/pkg/lib/operation/data/fetch"
)

const dataShortDescription = `Download project data`
const dataLongDescription = `Command "data"

Download the project data sources into the data directories.

Use "data download" for a plain HTTP source,
and "data fetch" for a dataset registry source.
`

func dataCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: dataShortDescription,
		Long:  dataLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no sub-command specified
			return cmd.Help()
		},
	}

	cmd.AddCommand(downloadCommand(root), fetchCommand(root))
	return cmd
}

const downloadShortDescription = `Download a file over HTTP`
const downloadLongDescription = `Command "data download"

Download a data source over HTTP into the target directory.
A ZIP archive is unpacked and the archive file is removed.

The source is taken from the manifest, by the "--source" flag,
or an ad-hoc URL can be given by the "--url" flag.
`

func downloadCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: downloadShortDescription,
		Long:  downloadLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := httpSource(root)
			if err != nil {
				return err
			}

			_, unlock, err := root.LoadProject()
			if err != nil {
				return err
			}
			defer unlock()

			return dataDownload.Run(root.ctx, source, root)
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().String("source", "", "name of a data source from the manifest")
	cmd.Flags().String("url", "", "download an ad-hoc url instead of a manifest source")
	cmd.Flags().String("target", "", "target directory, default data/raw")
	cmd.Flags().Bool("unzip", false, "unpack the downloaded archive")
	return cmd
}

const fetchShortDescription = `Fetch a dataset by the dataset CLI`
const fetchLongDescription = `Command "data fetch"

Fetch a dataset from the dataset registry.
The work is delegated to the "kaggle" CLI,
it must be installed and configured, see the ".env" file.
`

func fetchCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: fetchShortDescription,
		Long:  fetchLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := kaggleSource(root)
			if err != nil {
				return err
			}

			_, unlock, err := root.LoadProject()
			if err != nil {
				return err
			}
			defer unlock()

			return dataFetch.Run(root.ctx, source, root)
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().String("source", "", "name of a data source from the manifest")
	cmd.Flags().String("dataset", "", "fetch an ad-hoc dataset, format owner/dataset")
	cmd.Flags().String("target", "", "target directory, default data/raw")
	cmd.Flags().Bool("unzip", false, "unpack the downloaded archive")
	return cmd
}

// httpSource resolves the "data download" source from the flags or the manifest.
func httpSource(root *rootCommand) (*manifest.DataSource, error) {
	if url := root.options.GetString("url"); url != "" {
		if err := interaction.UrlValidator(url); err != nil {
			return nil, fmt.Errorf(`invalid url "%s": %w`, url, err)
		}
		return &manifest.DataSource{
			Name:   "cli",
			Type:   manifest.SourceTypeHttp,
			URL:    url,
			Target: root.options.GetString("target"),
			Unzip:  root.options.GetBool("unzip"),
		}, nil
	}

	m, err := root.ProjectManifest()
	if err != nil {
		return nil, err
	}

	source, err := m.GetDataSource(root.options.GetString("source"))
	if err != nil {
		return nil, err
	}
	if source.Type != manifest.SourceTypeHttp {
		return nil, fmt.Errorf(`data source "%s" is type "%s", use "dsc data fetch"`, source.Name, source.Type)
	}

	return overrideSource(root, source), nil
}

// kaggleSource resolves the "data fetch" source from the flags or the manifest.
func kaggleSource(root *rootCommand) (*manifest.DataSource, error) {
	if dataset := root.options.GetString("dataset"); dataset != "" {
		if err := interaction.DatasetRefValidator(dataset); err != nil {
			return nil, err
		}
		return &manifest.DataSource{
			Name:    "cli",
			Type:    manifest.SourceTypeKaggle,
			Dataset: dataset,
			Target:  root.options.GetString("target"),
			Unzip:   root.options.GetBool("unzip"),
		}, nil
	}

	m, err := root.ProjectManifest()
	if err != nil {
		return nil, err
	}

	source, err := m.GetDataSource(root.options.GetString("source"))
	if err != nil {
		return nil, err
	}
	if source.Type != manifest.SourceTypeKaggle {
		return nil, fmt.Errorf(`data source "%s" is type "%s", use "dsc data download"`, source.Name, source.Type)
	}

	return overrideSource(root, source), nil
}

// overrideSource applies flag overrides on top of a manifest source.
func overrideSource(root *rootCommand, source *manifest.DataSource) *manifest.DataSource {
	out := *source
	if target := root.options.GetString("target"); target != "" {
		out.Target = target
	}
	if root.options.GetBool("unzip") {
		out.Unzip = true
	}
	return &out
}
