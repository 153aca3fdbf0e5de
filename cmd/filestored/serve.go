/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nabbar/filestored/internal/config"
	"github.com/nabbar/filestored/internal/server"
	"github.com/nabbar/filestored/logger"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "filestored",
		Short: "Multi-user TCP file storage service",
		RunE:  runServe,
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a configuration file")
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		ListenAddr:     cfg.ListenAddr,
		MetricsAddr:    cfg.MetricsAddr,
		StorageDir:     cfg.StorageDir,
		DirPerm:        cfg.StorageDirPerm,
		FilePerm:       cfg.StorageFilePerm,
		DefaultQuota:   cfg.DefaultQuota,
		ReaderPoolSize: cfg.ReaderPoolSize,
		WorkerPoolSize: cfg.WorkerPoolSize,
		SenderPoolSize: cfg.SenderPoolSize,
		TaskQueueCap:   cfg.TaskQueueCapacity,
		ResultQueueCap: cfg.ResultQueueCapacity,
		ShutdownGrace:  cfg.ShutdownGrace,
	}, log)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("shutdown signal received", nil)
		cancel()
	}()

	return srv.Serve(ctx)
}
