// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command yangvalidate loads a YANG library description, builds the
// resulting schema tree, and either reports its module-set id, prints an
// ASCII dump of it, or validates an instance document against it.
package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sdcio/yang-datamodel/datamodel"
	"github.com/sdcio/yang-datamodel/schema"
	"github.com/sdcio/yang-datamodel/validate"
)

// Exit codes per the library's external-interface contract: 0 success, 1
// I/O or JSON decode error, 2 library/model error, 3 instance-data error.
const (
	exitOK           = 0
	exitIOError      = 1
	exitModelError   = 2
	exitInstanceData = 3
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// cliError pins a specific exit code to an error the command layer
// already logged, so main's Execute error path doesn't have to guess.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func exitCode(err error) int {
	if ce, ok := err.(*cliError); ok {
		return ce.code
	}
	return exitIOError
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("YANG")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "yangvalidate",
		Short:        "Load a YANG library description and work with the schema it describes",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("library", "", "path to the yang-library JSON description")
	root.PersistentFlags().StringSlice("path", nil, "module search path (repeatable, or set YANG_MODPATH)")
	v.BindPFlag("library", root.PersistentFlags().Lookup("library"))
	v.BindPFlag("path", root.PersistentFlags().Lookup("path"))
	root.MarkPersistentFlagRequired("library")

	root.AddCommand(newModuleSetIDCmd(v), newTreeCmd(v), newValidateCmd(v))
	return root
}

func searchPath(v *viper.Viper) []string {
	if p := v.GetStringSlice("path"); len(p) > 0 {
		return p
	}
	if env := os.Getenv("YANG_MODPATH"); env != "" {
		return strings.Split(env, ":")
	}
	return nil
}

func loadDataModel(v *viper.Viper) (*datamodel.DataModel, error) {
	libPath := v.GetString("library")
	data, err := os.ReadFile(libPath)
	if err != nil {
		return nil, &cliError{exitIOError, err}
	}
	dm, err := datamodel.FromLibraryData(data, searchPath(v))
	if err != nil {
		return nil, &cliError{exitModelError, err}
	}
	return dm, nil
}

func newModuleSetIDCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "module-set-id",
		Short: "Print the loaded yang-library's module-set-id",
		RunE: func(cmd *cobra.Command, args []string) error {
			dm, err := loadDataModel(v)
			if err != nil {
				return err
			}
			fmt.Println(dm.ModuleSetID())
			return nil
		},
	}
}

func newTreeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print an ASCII dump of the assembled schema tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			dm, err := loadDataModel(v)
			if err != nil {
				return err
			}
			fmt.Println(schema.DumpTree(dm.Schema))
			return nil
		},
	}
}

func newValidateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <instance.json>",
		Short: "Validate an RFC 7951 JSON instance document against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dm, err := loadDataModel(v)
			if err != nil {
				return err
			}

			scope, err := validate.ParseScope(v.GetString("scope"))
			if err != nil {
				return &cliError{exitModelError, err}
			}
			ctype, err := validate.ParseContentType(v.GetString("content-type"))
			if err != nil {
				return &cliError{exitModelError, err}
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return &cliError{exitIOError, err}
			}
			val, err := dm.FromJSON(data)
			if err != nil {
				return &cliError{exitInstanceData, err}
			}
			root := dm.Root(val)

			log.Debugf("yangvalidate: validating %s (scope=%s content-type=%s)",
				args[0], v.GetString("scope"), v.GetString("content-type"))
			if err := dm.Validate(root, ctype, scope); err != nil {
				return &cliError{exitInstanceData, err}
			}
			fmt.Println("valid")
			return nil
		},
	}
	cmd.Flags().String("scope", "all", "validation scope: syntax, semantics, or all")
	cmd.Flags().String("content-type", "all", "content type: config, nonconfig, or all")
	v.BindPFlag("scope", cmd.Flags().Lookup("scope"))
	v.BindPFlag("content-type", cmd.Flags().Lookup("content-type"))
	return cmd
}
