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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vi013t/enigma/analysis"
	"github.com/vi013t/enigma/cracker"
	"github.com/vi013t/enigma/enigma"
)

var (
	crackRotorSet []int
	crackTopK     int
	crackBudget   int
	crackMinScore float64
	crackWorkers  int
	crackAbove    float64
	crackQuiet    bool
)

// crackCmd represents the crack command
var crackCmd = &cobra.Command{
	Use:   "crack [ciphertext]",
	Short: "Recover unknown machine settings from ciphertext",
	Long: `Recover the machine settings that produced a ciphertext, given only
the ciphertext itself.  The search sweeps rotor orders and start
positions in parallel, then refines the best candidates' ring settings
and plugboard pairs, scoring decodes against English letter statistics.
Longer ciphertexts crack more reliably; a few hundred letters is a good
minimum.`,
	Run: func(cmd *cobra.Command, args []string) {
		crack(args)
	},
}

func init() {
	rootCmd.AddCommand(crackCmd)
	crackCmd.Flags().IntSliceVar(&crackRotorSet, "rotorSet", []int{1, 2, 3, 4, 5}, "catalog rotors the machine may have used")
	crackCmd.Flags().IntVar(&crackTopK, "topK", 10, "coarse candidates kept for refinement")
	crackCmd.Flags().IntVar(&crackBudget, "moveBudget", 20, "plugboard hill-climb move limit per candidate")
	crackCmd.Flags().Float64Var(&crackMinScore, "minScore", 0.7, "plausibility threshold for accepting an answer")
	crackCmd.Flags().IntVar(&crackWorkers, "workers", 0, "search parallelism (default: CPU count)")
	crackCmd.Flags().Float64Var(&crackAbove, "stopAbove", 0, "stop the coarse sweep early at this score (trades reproducibility for speed)")
	crackCmd.Flags().BoolVarP(&crackQuiet, "quiet", "q", false, "suppress progress logging")
}

// progressLogger reports search progress on stderr when it is a
// terminal, unless silenced.
func progressLogger() *slog.Logger {
	if crackQuiet || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func crack(args []string) {
	var ciphertext string
	var fout *os.File
	if len(args) > 0 {
		ciphertext = strings.Join(args, " ")
		fout = os.Stdout
	} else {
		var fin *os.File
		fin, fout = getInputAndOutputFiles(false)
		raw, err := io.ReadAll(fin)
		checkError(err)
		ciphertext = string(raw)
	}
	defer fout.Close()

	engine := cracker.New(analysis.NewScorer(), cracker.Options{
		Rotors:     crackRotorSet,
		TopK:       crackTopK,
		MoveBudget: crackBudget,
		MinScore:   crackMinScore,
		Workers:    crackWorkers,
		StopAbove:  crackAbove,
		Logger:     progressLogger(),
	})
	found, err := engine.Crack(context.Background(), ciphertext)
	if errors.Is(err, cracker.ErrNotFound) {
		cobra.CheckErr("no plausible settings found; try a longer ciphertext or a lower --minScore")
	}
	cobra.CheckErr(err)

	s := found.Settings
	fmt.Fprintf(fout, "Rotors:    %s %s %s\n", rotorName(s.Rotors[0]), rotorName(s.Rotors[1]), rotorName(s.Rotors[2]))
	fmt.Fprintf(fout, "Reflector: %s\n", s.Reflector)
	fmt.Fprintf(fout, "Rings:     %d %d %d\n", s.Rings[0], s.Rings[1], s.Rings[2])
	fmt.Fprintf(fout, "Positions: %d %d %d\n", s.Positions[0], s.Positions[1], s.Positions[2])
	if board := enigma.CanonicalPlugboard(s.Plugboard); board != "" {
		fmt.Fprintf(fout, "Plugboard: %s\n", board)
	}
	fmt.Fprintf(fout, "Score:     %.4f\n", found.Score)
	fmt.Fprintf(fout, "\n%s\n", found.Plaintext)
}
