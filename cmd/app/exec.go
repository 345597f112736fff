// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/filamentenespanol/sitegen/pkg/build"
	"github.com/filamentenespanol/sitegen/pkg/metrics"
	"github.com/filamentenespanol/sitegen/pkg/osfakes/osshim"
	"github.com/filamentenespanol/sitegen/pkg/server"
	"github.com/filamentenespanol/sitegen/pkg/siteconfig"
	"github.com/filamentenespanol/sitegen/pkg/writers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

func exec(ctx context.Context, vip *viper.Viper, out io.Writer) error {
	var o options
	if err := vip.Unmarshal(&o); err != nil {
		return err
	}
	b, err := newBuilder(o)
	if err != nil {
		return err
	}
	klog.Infof("Site configuration: %s", o.ConfigPath)
	klog.Infof("Output dir: %s", o.DestinationPath)
	site, err := b.Build(ctx)
	if err != nil {
		return err
	}
	if o.DryRun {
		dryRun := writers.NewDryRunWritersFactory(out)
		if err := b.Write(ctx, site, dryRun.GetWriter(o.DestinationPath)); err != nil {
			return err
		}
		dryRun.Flush()
		return nil
	}
	if err := b.Write(ctx, site, &writers.FSWriter{Root: o.DestinationPath}); err != nil {
		return err
	}
	klog.Infof("%d pages written to %s", len(site.Pages), o.DestinationPath)
	return nil
}

func serve(ctx context.Context, vip *viper.Viper) error {
	var o serveOptions
	if err := vip.Unmarshal(&o); err != nil {
		return err
	}
	b, err := newBuilder(o.options)
	if err != nil {
		return err
	}
	site, err := b.Build(ctx)
	if err != nil {
		return err
	}
	metrics.RegisterServerMetrics(nil)
	srv := server.New(site, o.StaticDir)
	srv.Gatherer = prometheus.DefaultGatherer
	if o.Watch {
		go func() {
			paths := []string{o.DocsDir, o.PagesDir, o.StaticDir, o.ConfigPath}
			if err := srv.Watch(ctx, paths, func(ctx context.Context) (*build.Site, error) {
				// the configuration file may have changed too
				b, err := newBuilder(o.options)
				if err != nil {
					return nil, err
				}
				return b.Build(ctx)
			}); err != nil {
				klog.Errorf("watching sources failed: %v", err)
			}
		}()
	}
	return srv.Run(ctx, fmt.Sprintf(":%d", o.Port))
}

func printConfig(vip *viper.Viper, out io.Writer) error {
	var o configOptions
	if err := vip.Unmarshal(&o); err != nil {
		return err
	}
	cfg, err := loadSiteConfig(o.options)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid site configuration %s: %w", o.ConfigPath, err)
	}
	if o.ValidateOnly {
		klog.Infof("site configuration %s is valid", o.ConfigPath)
		return nil
	}
	y, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(y)
	return err
}

func initConfig(vip *viper.Viper) error {
	var o options
	if err := vip.Unmarshal(&o); err != nil {
		return err
	}
	if _, err := os.Stat(o.ConfigPath); err == nil {
		return fmt.Errorf("site configuration %s already exists", o.ConfigPath)
	} else if !os.IsNotExist(err) {
		return err
	}
	if dir := filepath.Dir(o.ConfigPath); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	if err := os.WriteFile(o.ConfigPath, siteconfig.DefaultTemplate(), 0644); err != nil {
		return err
	}
	klog.Infof("site configuration written to %s", o.ConfigPath)
	return nil
}

func loadSiteConfig(o options) (siteconfig.Config, error) {
	vars := siteconfig.DefaultVariables(time.Now())
	for k, v := range o.Variables {
		vars[k] = v
	}
	return siteconfig.Load(&osshim.OsShim{}, o.ConfigPath, vars)
}

func newBuilder(o options) (*build.Builder, error) {
	cfg, err := loadSiteConfig(o)
	if err != nil {
		return nil, err
	}
	return build.NewBuilder(cfg, build.Options{
		DocsDir:          o.DocsDir,
		PagesDir:         o.PagesDir,
		StaticDir:        o.StaticDir,
		DocumentWorkers:  o.DocumentWorkersCount,
		FailFast:         o.FailFast,
		ProgressFromDocs: o.ProgressFromDocs,
	}), nil
}
