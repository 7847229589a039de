package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"gioui.org/app"
	"github.com/vsariola/slidermon"
	"github.com/vsariola/slidermon/cmd"
	"github.com/vsariola/slidermon/monitor"
	"github.com/vsariola/slidermon/monitor/gioui"
	"github.com/vsariola/slidermon/version"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")
var defaultMidiInput = flag.String("midi-input", "", "connect MIDI input to matching device name prefix")
var speed = flag.String("speed", "", "initial playback speed: 1x, 2x or Live")
var versionFlag = flag.Bool("v", false, "Print version.")

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.Describe("slidermon"))
		os.Exit(0)
	}
	var f *os.File
	if *cpuprofile != "" {
		var err error
		f, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
	}
	broker := monitor.NewBroker()
	midiContext := cmd.NewMidiContext(broker)
	model := monitor.NewModel(broker, monitor.BrokerScheduler{Broker: broker}, midiContext, slidermon.Recording{})
	if a := flag.Args(); len(a) > 0 {
		f, err := os.Open(a[0])
		if err != nil {
			log.Fatal(err)
		}
		model.ReadRecording(f)
	}
	monitorUi := gioui.NewMonitor(model)
	if isFlagPassed("midi-input") {
		model.MIDI().OpenByPrefix(*defaultMidiInput)
	}
	if *speed != "" {
		s, err := monitor.ParseSpeedMode(*speed)
		if err != nil {
			log.Fatal(err)
		}
		model.Play().Speed().SetValue(int(s))
	}

	go func() {
		monitorUi.Main()
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
			f.Close()
		}
		if *memprofile != "" {
			f, err := os.Create(*memprofile)
			if err != nil {
				log.Fatal("could not create memory profile: ", err)
			}
			defer f.Close() // error handling omitted for example
			runtime.GC()    // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatal("could not write memory profile: ", err)
			}
		}
		os.Exit(0)
	}()
	app.Main()
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
