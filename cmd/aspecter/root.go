package aspecter

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "aspecter",
		Short: "Aspecter: weighted path recommendation over aspect recipe graphs",
		Long: `Aspecter loads aspects, recipes and held quantities from a store, builds
a recipe graph, and ranks the paths connecting two aspects by how cheaply
they can be walked given the current holdings.

Complete documentation is available at https://github.com/thaumlab/aspecter`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize configuration
			initConfig()
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.aspecter.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("db-driver", "", "store driver (sqlite, neo4j, memory)")
	rootCmd.PersistentFlags().String("db-uri", "", "sqlite file path or neo4j bolt URI")
	rootCmd.PersistentFlags().String("db-username", "", "database username (neo4j only)")
	rootCmd.PersistentFlags().String("db-password", "", "database password (neo4j only)")
	rootCmd.PersistentFlags().String("db-database", "", "database name (neo4j only)")

	// Bind flags to viper
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("database.driver", rootCmd.PersistentFlags().Lookup("db-driver"))
	viper.BindPFlag("database.uri", rootCmd.PersistentFlags().Lookup("db-uri"))
	viper.BindPFlag("database.username", rootCmd.PersistentFlags().Lookup("db-username"))
	viper.BindPFlag("database.password", rootCmd.PersistentFlags().Lookup("db-password"))
	viper.BindPFlag("database.database", rootCmd.PersistentFlags().Lookup("db-database"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".aspecter" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".aspecter")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
