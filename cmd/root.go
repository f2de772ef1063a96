/*
Copyright © 2025 xsukax

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "1.0.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tarjuman",
	Short: "Structure-preserving English ↔ Arabic translator",
	Long: `Tarjuman translates documents between English and Arabic while keeping
their paragraph layout intact: blank lines, paragraph order, and sentence
boundaries survive the round trip through the translation engine.

Backends: a local Marian seq2seq sidecar (default, fully offline),
a self-hosted Ollama LLM, or Google Cloud Translate.

Use "tarjuman serve" to run the HTTP API or "tarjuman translate" for
one-shot file translation.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.tarjuman.yaml)")
}

// initConfig loads the optional config file and TARJUMAN_* environment
// variables. Flags still win over both.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tarjuman")
	}

	viper.SetEnvPrefix("TARJUMAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
