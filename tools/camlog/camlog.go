package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"io"
	"io/ioutil"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/openkh-tools/mdlx_browser/utils"
)

// Keyframe is one sampled camera transform, rotation as an x,y,z,w
// quaternion.
type Keyframe struct {
	Frame       int        `json:"frame"`
	Translation [3]float32 `json:"translation"`
	Rotation    [4]float32 `json:"rotation"`
}

func formatF(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// WriteCameraLog emits the motion-editor CSV. The coordinate handedness
// differs from the editor, so X is negated; angles go out in degrees.
func WriteCameraLog(w io.Writer, frames []Keyframe) error {
	sort.Slice(frames, func(i, j int) bool { return frames[i].Frame < frames[j].Frame })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Time", "X", "Y", "Z", "Yaw", "Pitch", "Roll"}); err != nil {
		return err
	}

	frameStart := 0
	if len(frames) > 0 {
		frameStart = frames[0].Frame
	}

	for _, kf := range frames {
		q := mgl32.Quat{W: kf.Rotation[3],
			V: mgl32.Vec3{kf.Rotation[0], kf.Rotation[1], kf.Rotation[2]}}
		euler := utils.RadiansToDegreeV3(utils.QuatToEuler(q))

		record := []string{
			strconv.Itoa(kf.Frame - frameStart),
			formatF(-kf.Translation[0]),
			formatF(kf.Translation[1]),
			formatF(kf.Translation[2]),
			formatF(euler.Y()), // yaw
			formatF(euler.X()), // pitch
			formatF(euler.Z()), // roll
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func main() {
	var in, out string
	flag.StringVar(&in, "track", "", "Path to camera track json")
	flag.StringVar(&out, "csv", "camera-log.csv", "Output csv path")
	flag.Parse()

	if in == "" {
		flag.PrintDefaults()
		return
	}

	data, err := ioutil.ReadFile(in)
	if err != nil {
		log.Fatal(err)
	}

	var frames []Keyframe
	if err := json.Unmarshal(data, &frames); err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := WriteCameraLog(f, frames); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s (%d frames)", out, len(frames))
}
