// Package main is the entry point for the staffdrill trainer
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/0xlemi/staffdrill/internal/game"
	"github.com/0xlemi/staffdrill/internal/midiin"
	"github.com/0xlemi/staffdrill/internal/sequence"
	"github.com/0xlemi/staffdrill/internal/tone"
	"github.com/0xlemi/staffdrill/internal/ui"
)

var version = "dev"

var (
	seed    int64
	noSound bool
	useMIDI bool
)

var rootCmd = &cobra.Command{
	Use:   "staffdrill",
	Short: "Practice reading notes on the grand staff",
	Long: `staffdrill shows one note at a time on a grand staff and asks you to
name it. Answer with the a-g keys, by clicking the letter buttons, or by
playing the note on a connected MIDI keyboard.

Every answer sounds its tone; correct answers advance the drill, wrong
answers flash a hint and let you try again. The drill never ends.`,
	Version: version,
	RunE:    run,
}

func init() {
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for the note sequence (0 = time-based)")
	rootCmd.Flags().BoolVar(&noSound, "no-sound", false, "Disable answer tones")
	rootCmd.Flags().BoolVar(&useMIDI, "midi", false, "Answer with a connected MIDI keyboard")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	session := game.NewSession(sequence.New(seed))

	var player tone.Player = tone.NewSynth()
	if noSound {
		player = tone.NopPlayer{}
	}
	defer player.Close()

	model := ui.NewModel(session, player)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if useMIDI {
		listener, err := midiin.Open(func(letter string) {
			p.Send(ui.SubmitLetterMsg{Letter: letter})
		})
		if err != nil {
			// Keyboard and mouse input still work; say so and move on.
			log.Printf("MIDI input unavailable: %v", err)
		} else {
			defer listener.Close()
			log.Printf("MIDI input connected: %s", listener.Name())
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}
