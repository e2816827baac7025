package main

import (
	"flag"
	"image"
	"io/ioutil"
	"log"
	"sync"
	"time"

	"github.com/phosphor65/phosphor/adapter"
	"github.com/phosphor65/phosphor/disassemble"
	"github.com/phosphor65/phosphor/machine"
	"github.com/phosphor65/phosphor/ppu"
	"github.com/pkg/profile"
	"github.com/veandco/go-sdl2/sdl"
	xdraw "golang.org/x/image/draw"
)

var (
	rom        = flag.String("rom", "", "Path to ROM image to load at 0x8000")
	cart       = flag.String("cart", "", "Path to optional cartridge image")
	charset    = flag.String("charset", "charset.bin", "Path to charset bitmap (9 bytes per glyph)")
	ticks      = flag.Int("ticks", 10000, "Instructions to run per frame")
	delay      = flag.Int("delay", 16, "Per frame delay in ms")
	debug      = flag.Bool("debug", false, "If true will emit CPU tracing and adapter access logging while running")
	profileRun = flag.Bool("profile", false, "If true will emit a CPU profile")
)

// Window pixels per character cell, at 2x scale.
const (
	kSCALE   = 2
	kCELL_W  = ppu.CharWidth * kSCALE
	kCELL_H  = ppu.CharHeight * kSCALE
	kWIN_W   = ppu.Width * kSCALE
	kWIN_H   = ppu.Height * kSCALE
	kWIN_TIT = "phosphor"
)

// latch is a one shot interrupt line: set by an input event, cleared
// the first time the machine samples it.
type latch struct {
	b bool
}

func (l *latch) Raised() bool {
	v := l.b
	l.b = false
	return v
}

var window *sdl.Window
var surface *sdl.Surface

func main() {
	flag.Parse()
	if *profileRun {
		defer profile.Start().Stop()
	}
	sdl.Main(func() {
		var wg sync.WaitGroup
		wg.Add(1)
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
				log.Fatalf("Can't init SDL: %v", err)
			}

			var err error
			window, err = sdl.CreateWindow(kWIN_TIT, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, kWIN_W, kWIN_H, sdl.WINDOW_SHOWN)
			if err != nil {
				log.Fatalf("Can't create window: %v", err)
			}
			surface, err = window.GetSurface()
			if err != nil {
				log.Fatalf("Can't get window surface: %v", err)
			}
			wg.Done()
		})

		romImage, err := ioutil.ReadFile(*rom)
		if err != nil {
			log.Fatalf("Can't load rom: %v from path: %s", err, *rom)
		}
		charsetImage, err := ioutil.ReadFile(*charset)
		if err != nil {
			log.Fatalf("Can't load charset: %v from path: %s", err, *charset)
		}
		var cartImage []uint8
		if *cart != "" {
			cartImage, err = ioutil.ReadFile(*cart)
			if err != nil {
				log.Fatalf("Can't load cart: %v from path: %s", err, *cart)
			}
		}
		wg.Wait()
		defer func() {
			window.Destroy()
			sdl.Quit()
		}()

		input := &latch{}
		m, err := machine.Init(&machine.Def{
			ROM:       romImage,
			Cartridge: cartImage,
			Charset:   charsetImage,
			IRQ:       input,
			Debug:     *debug,
			FrameDone: func(img *image.NRGBA) {
				sdl.Do(func() {
					xdraw.NearestNeighbor.Scale(surface, surface.Bounds(), img, img.Bounds(), xdraw.Src, nil)
					window.UpdateSurface()
				})
			},
		})
		if err != nil {
			log.Fatalf("Can't init machine: %v", err)
		}

		ad := m.Adapter()
		for {
			quit := false
			sdl.Do(func() {
				for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
					switch ev := e.(type) {
					case *sdl.QuitEvent:
						quit = true
					case *sdl.KeyboardEvent:
						if ev.Repeat != 0 {
							break
						}
						ad.Keyb = uint8(ev.Keysym.Scancode)
						if ev.Type == sdl.KEYDOWN {
							ad.InterruptID = adapter.KEYDOWN
						} else {
							ad.InterruptID = adapter.KEYUP
						}
						input.b = true
					case *sdl.MouseMotionEvent:
						ad.MouseX = uint8(ev.X / kCELL_W)
						ad.MouseY = uint8(ev.Y / kCELL_H)
					case *sdl.MouseButtonEvent:
						if ev.Type != sdl.MOUSEBUTTONDOWN {
							break
						}
						switch ev.Button {
						case sdl.BUTTON_LEFT:
							ad.InterruptID = adapter.MOUSE_LCLICK
							input.b = true
						case sdl.BUTTON_RIGHT:
							ad.InterruptID = adapter.MOUSE_RCLICK
							input.b = true
						}
					}
				}
			})
			if quit {
				break
			}

			if *debug {
				c := m.CPU()
				for i := 0; i < *ticks; i++ {
					dis, _ := disassemble.Step(c.PC, m.Mapper())
					log.Printf("%s %s %s", dis, c.Debug(), ad.Debug())
					m.Tick()
				}
			} else {
				m.TickN(*ticks)
			}
			m.RenderIfDirty()
			time.Sleep(time.Duration(*delay) * time.Millisecond)
		}
	})
}
