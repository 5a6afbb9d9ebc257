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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"

	"github.com/vi013t/enigma/enigma"
)

var joinLines bool

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [message]",
	Short: "Decode a message with the configured machine",
	Long: `Decode a message with the configured Enigma machine.  A PEM encoded
message carries its machine settings in the block headers, so decoding
one needs no configuration flags at all.`,
	Run: func(cmd *cobra.Command, args []string) {
		decode(args)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().BoolVarP(&joinLines, "join", "j", false, "join wrapped ciphertext lines before decoding")
	decodeCmd.Flags().BoolVar(&stripText, "strip", false, "drop punctuation and spaces instead of passing them through")
	decodeCmd.Flags().BoolVar(&keepCase, "preserveCase", false, "keep lowercase input lowercase in the output")
}

// settingsFromHeaders overrides the flag-configured settings with the
// ones recorded in a PEM block's headers.
func settingsFromHeaders(headers map[string]string, s enigma.Settings) (enigma.Settings, error) {
	var err error
	if spec, ok := headers["Rotors"]; ok {
		if s.Rotors, err = parseRotors(spec); err != nil {
			return s, err
		}
	}
	if name, ok := headers["Reflector"]; ok {
		s.Reflector = name
	}
	if spec, ok := headers["Rings"]; ok {
		if s.Rings, err = parseOffsets(spec); err != nil {
			return s, err
		}
	}
	if spec, ok := headers["Positions"]; ok {
		if s.Positions, err = parseOffsets(spec); err != nil {
			return s, err
		}
	}
	if board, ok := headers["Plugboard"]; ok {
		s.Plugboard = board
	} else if _, ok := headers["Rotors"]; ok {
		s.Plugboard = ""
	}
	return s, nil
}

func decode(args []string) {
	if len(args) > 0 {
		machine := buildMachine()
		fmt.Println(machine.Decode(strings.Join(args, " ")))
		return
	}

	fin, fout := getInputAndOutputFiles(false)
	defer fout.Close()

	bRdr := bufio.NewReader(fin)
	var message string
	settings, err := machineSettings()
	cobra.CheckErr(err)

	if peeked, err := bRdr.Peek(5); err == nil && string(peeked) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		if blck.Type != pemBlockType {
			cobra.CheckErr(fmt.Sprintf("unexpected PEM block type: [%s]", blck.Type))
		}
		raw, err := io.ReadAll(pRdr)
		checkError(err)
		message = string(raw)
		settings, err = settingsFromHeaders(blck.Headers, settings)
		cobra.CheckErr(err)
	} else {
		var rdr io.Reader = bRdr
		if joinLines {
			rdr = lines.CombineLines(bRdr)
		}
		raw, err := io.ReadAll(rdr)
		checkError(err)
		message = strings.TrimRight(string(raw), "\n")
	}

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

	fmt.Fprintln(fout, machine.Decode(message))
}
