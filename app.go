package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/joho/godotenv"

	"github.com/memmaker/spritefont/engine/glhf"
	"github.com/memmaker/spritefont/engine/spritefont"
	"github.com/memmaker/spritefont/engine/util"
)

var sampleColors = [][4]float32{
	{1, 1, 1, 1},
	{1, 1, 1, 0.5},
	{1, 0.5, 0.5, 1},
	{0.5, 0.5, 1, 1},
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func loadFont(atlasPath, imagePath string) (*spritefont.Renderer, error) {
	atlasData, err := os.ReadFile(atlasPath)
	if err != nil {
		util.LogIOError(err.Error())
		return nil, err
	}
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		util.LogIOError(err.Error())
		return nil, err
	}
	return spritefont.New(atlasData, imageData)
}

// queueSample queues the demo text: four color passes, switching to a smaller
// monospace style after the second one.
func queueSample(font *spritefont.Renderer) {
	font.SetMonospace(false)
	font.SetSpacing(1)
	font.SetSize(24)
	basePos := float32(40)
	for i, c := range sampleColors {
		font.SetColor(c[0], c[1], c[2], c[3])
		font.AddString(10, basePos, "ABCDEFG")
		basePos += 30
		font.AddString(10, basePos, "やったー！日本語出たよー！")
		basePos += 30

		if i == 1 {
			basePos += 10
			font.SetSize(20)
			font.AddString(10, basePos, "以下等幅")
			basePos += 30
			font.SetMonospace(true)
			font.SetSpacing(0.75)
		}
	}
}

func runDemo(atlasPath, imagePath string, width, height int) error {
	window, terminate, err := util.InitOpenGL("spritefont", width, height)
	if err != nil {
		return err
	}

	font, err := loadFont(atlasPath, imagePath)
	if err != nil {
		terminate()
		return err
	}
	fbWidth, fbHeight := window.GetFramebufferSize()
	font.SetScreen(0, float32(width), float32(height), 0)
	util.LogSystemInfo(fmt.Sprintf("window %dx%d, framebuffer %dx%d", width, height, fbWidth, fbHeight))

	timer := util.NewTimer()
	app := &util.GlApplication{
		Window:       window,
		WindowWidth:  width,
		WindowHeight: height,
		TerminateFunc: func() {
			font.Release()
			terminate()
		},
		DrawFunc: func(elapsed float64) {
			glhf.EnableAlphaBlending()
			stop := timer.Start("layout")
			queueSample(font)
			stop()
			stop = timer.Start("flush")
			font.Flush()
			stop()
			glhf.DisableBlending()
		},
		KeyHandler: func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
			if key == glfw.KeyT && action == glfw.Press {
				util.LogSystemInfo("frame timings\n" + timer.String())
				timer.Reset()
			}
		},
	}
	app.Run()
	return nil
}

func main() {
	// a missing .env is fine, flags and the environment still apply
	_ = godotenv.Load()

	atlasPath := flag.String("atlas", envOr("SPRITEFONT_ATLAS", "font.sff"), "sprite font atlas")
	imagePath := flag.String("image", envOr("SPRITEFONT_IMAGE", "font.png"), "glyph sheet image")
	width := flag.Int("width", 800, "window width")
	height := flag.Int("height", 600, "window height")
	flag.Parse()

	var err error
	mainthread.Run(func() {
		mainthread.Call(func() {
			err = runDemo(*atlasPath, *imagePath, *width, *height)
		})
	})
	if err != nil {
		util.LogSystemError(err.Error())
		os.Exit(1)
	}
}
