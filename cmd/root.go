/*
Copyright © 2026 vi013t

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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vi013t/enigma/enigma"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	traceSteps     bool
	Version        string = "dev"
)

const encodedSuffix = ".enigma"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "An Enigma machine simulator and settings cracker",
	Long: `enigma encodes and decodes messages with a configurable Enigma rotor
cipher machine, and can recover unknown machine settings from ciphertext
alone by statistical search.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file to read the message from.")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file to write the result to.")
	rootCmd.PersistentFlags().StringP("rotors", "r", "I II III", "rotor order, left to right (roman numerals or numbers 1-8)")
	rootCmd.PersistentFlags().String("reflector", "B", "reflector name (A, B, C, BThin, CThin, UKWR, UKWK)")
	rootCmd.PersistentFlags().String("rings", "AAA", "ring settings, as letters (AAA) or numbers (0 0 0)")
	rootCmd.PersistentFlags().String("positions", "AAA", "rotor start positions, as letters or numbers")
	rootCmd.PersistentFlags().String("plugboard", "", "plugboard cable pairs, e.g. \"BY EW FZ\"")
	rootCmd.PersistentFlags().BoolVar(&traceSteps, "trace", false, "write a per-keystroke signal trace to stderr")
	cobra.CheckErr(viper.BindPFlag("rotors", rootCmd.PersistentFlags().Lookup("rotors")))
	cobra.CheckErr(viper.BindPFlag("reflector", rootCmd.PersistentFlags().Lookup("reflector")))
	cobra.CheckErr(viper.BindPFlag("rings", rootCmd.PersistentFlags().Lookup("rings")))
	cobra.CheckErr(viper.BindPFlag("positions", rootCmd.PersistentFlags().Lookup("positions")))
	cobra.CheckErr(viper.BindPFlag("plugboard", rootCmd.PersistentFlags().Lookup("plugboard")))
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

		// Search config in home directory with name ".enigma" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".enigma")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

var romanRotors = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"}

func rotorName(number int) string {
	if number >= 1 && number <= len(romanRotors) {
		return romanRotors[number-1]
	}
	return strconv.Itoa(number)
}

// parseRotors accepts a rotor order either as roman numerals ("I II III")
// or as catalog numbers ("1 2 3"), left rotor first.
func parseRotors(spec string) ([enigma.MachineRotors]int, error) {
	var rotors [enigma.MachineRotors]int
	fields := strings.Fields(spec)
	if len(fields) != enigma.MachineRotors {
		return rotors, fmt.Errorf("need %d rotors, got %q", enigma.MachineRotors, spec)
	}
	for i, field := range fields {
		found := false
		for n, roman := range romanRotors {
			if strings.EqualFold(field, roman) {
				rotors[i] = n + 1
				found = true
				break
			}
		}
		if found {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return rotors, fmt.Errorf("unrecognized rotor %q", field)
		}
		rotors[i] = n
	}
	return rotors, nil
}

// parseOffsets accepts ring settings or start positions either as a
// letter triple ("AQX") or as three numbers ("0 16 23").
func parseOffsets(spec string) ([enigma.MachineRotors]int, error) {
	var offsets [enigma.MachineRotors]int
	fields := strings.Fields(spec)
	if len(fields) == 1 && len(fields[0]) == enigma.MachineRotors {
		for i, r := range strings.ToUpper(fields[0]) {
			if r < 'A' || r > 'Z' {
				return offsets, fmt.Errorf("offset letter %q outside A-Z", r)
			}
			offsets[i] = int(r - 'A')
		}
		return offsets, nil
	}
	if len(fields) != enigma.MachineRotors {
		return offsets, fmt.Errorf("need %d offsets, got %q", enigma.MachineRotors, spec)
	}
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return offsets, fmt.Errorf("unrecognized offset %q", field)
		}
		offsets[i] = n
	}
	return offsets, nil
}

// machineSettings assembles the machine configuration from the flags and
// the config file.
func machineSettings() (enigma.Settings, error) {
	s := enigma.DefaultSettings()
	rotors, err := parseRotors(viper.GetString("rotors"))
	if err != nil {
		return s, err
	}
	s.Rotors = rotors
	s.Reflector = viper.GetString("reflector")
	if s.Rings, err = parseOffsets(viper.GetString("rings")); err != nil {
		return s, err
	}
	if s.Positions, err = parseOffsets(viper.GetString("positions")); err != nil {
		return s, err
	}
	s.Plugboard = viper.GetString("plugboard")
	return s, nil
}

/*
	getInputAndOutputFiles will return the input and output files to use while
	encoding/decoding a message.  If input and/or output file names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles(encode bool) (*os.File, *os.File) {
	var fin *os.File
	var err error

	if len(inputFileName) > 0 {
		if inputFileName == "-" {
			fin = os.Stdin
		} else {
			fin, err = os.Open(inputFileName)
			cobra.CheckErr(err)
		}
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 {
		if outputFileName == "-" {
			fout = os.Stdout
		} else {
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		}
	} else if inputFileName == "-" {
		fout = os.Stdout
	} else if encode {
		outputFileName = inputFileName + encodedSuffix
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		if strings.HasSuffix(inputFileName, encodedSuffix) {
			outputFileName = strings.TrimSuffix(inputFileName, encodedSuffix)
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		} else {
			fout = os.Stdout
		}
	}
	return fin, fout
}

// checkError checks for errors that are not io.EOF and io.ErrUnexpectedEOF and logs them.
func checkError(e error) {
	if e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}
