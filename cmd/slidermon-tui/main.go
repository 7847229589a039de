package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vsariola/slidermon"
	"github.com/vsariola/slidermon/cmd"
	"github.com/vsariola/slidermon/monitor"
	"github.com/vsariola/slidermon/monitor/tui"
	"github.com/vsariola/slidermon/version"
)

func main() {
	midiInput := flag.String("midi-input", "", "connect MIDI input to matching device name prefix")
	speed := flag.String("speed", "1x", "initial playback speed: 1x, 2x or Live")
	play := flag.Bool("p", false, "Start playing immediately.")
	logFile := flag.String("log", "", "write the log to `file`; the terminal is used for drawing")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Slidermon terminal monitor. Scrub and replay a recorded state history.\nUsage: %s [flags] recording.yml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.Describe("slidermon-tui"))
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "slidermon")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	in, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	rec, err := slidermon.ReadRecording(in)
	in.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read %v: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
	s, err := monitor.ParseSpeedMode(*speed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	broker := monitor.NewBroker()
	midiContext := cmd.NewMidiContext(broker)
	model := monitor.NewModel(broker, monitor.BrokerScheduler{Broker: broker}, midiContext, rec)
	model.MIDI().OpenByPrefix(*midiInput)
	model.Play().Speed().SetValue(int(s))
	if *play {
		model.Play().Start().Do()
	}
	p := tea.NewProgram(
		tui.New(model),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
