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
	"strings"

	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"

	"github.com/vi013t/enigma/enigma"
)

var (
	usePem    bool
	wrapLines bool
	stripText bool
	keepCase  bool
)

const pemBlockType = "ENIGMA MESSAGE"

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [message]",
	Short: "Encode a message with the configured machine",
	Long: `Encode a message with the configured Enigma machine.  The message is
taken from the command line if given, otherwise from the input file.
Because the machine transform is reciprocal the same settings decode
what they encoded.`,
	Run: func(cmd *cobra.Command, args []string) {
		encode(args)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "wrap the output in a PEM block carrying the machine settings.")
	encodeCmd.Flags().BoolVarP(&wrapLines, "wrap", "w", false, "split the output into fixed-width lines")
	encodeCmd.Flags().BoolVar(&stripText, "strip", false, "drop punctuation and spaces instead of passing them through")
	encodeCmd.Flags().BoolVar(&keepCase, "preserveCase", false, "keep lowercase input lowercase in the output")
}

func buildMachine() *enigma.Machine {
	settings, err := machineSettings()
	cobra.CheckErr(err)
	builder := enigma.FromSettings(settings)
	if stripText {
		builder.StripPunctuation()
	}
	if keepCase {
		builder.PreserveCasing()
	}
	if traceSteps {
		builder.Trace(os.Stderr)
	}
	machine, err := builder.Build()
	cobra.CheckErr(err)
	return machine
}

// settingsHeaders records the machine configuration in PEM headers so
// the decode side needs no flags.
func settingsHeaders(s enigma.Settings) map[string]string {
	headers := map[string]string{
		"Rotors":    fmt.Sprintf("%s %s %s", rotorName(s.Rotors[0]), rotorName(s.Rotors[1]), rotorName(s.Rotors[2])),
		"Reflector": s.Reflector,
		"Rings":     fmt.Sprintf("%d %d %d", s.Rings[0], s.Rings[1], s.Rings[2]),
		"Positions": fmt.Sprintf("%d %d %d", s.Positions[0], s.Positions[1], s.Positions[2]),
	}
	if board := enigma.CanonicalPlugboard(s.Plugboard); board != "" {
		headers["Plugboard"] = board
	}
	return headers
}

func encode(args []string) {
	machine := buildMachine()

	var message string
	var fout *os.File
	if len(args) > 0 {
		message = strings.Join(args, " ")
		fout = os.Stdout
		if len(outputFileName) > 0 && outputFileName != "-" {
			var err error
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		}
	} else {
		var fin *os.File
		fin, fout = getInputAndOutputFiles(true)
		raw, err := io.ReadAll(fin)
		checkError(err)
		message = string(raw)
	}
	defer fout.Close()

	ciphertext := machine.Encode(message)
	switch {
	case usePem:
		blck := pem.Block{Type: pemBlockType, Headers: settingsHeaders(machine.Settings())}
		_, err := io.Copy(fout, pem.ToPem(strings.NewReader(ciphertext), blck))
		checkError(err)
	case wrapLines:
		_, err := io.Copy(fout, lines.SplitToLines(strings.NewReader(ciphertext)))
		checkError(err)
		fmt.Fprintln(fout)
	default:
		fmt.Fprintln(fout, ciphertext)
	}
}
