package main

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"
	"testing"
)

func TestWriteCameraLog(t *testing.T) {
	frames := []Keyframe{
		{Frame: 11, Translation: [3]float32{-2, 5, 0.5}, Rotation: [4]float32{0, 0, 0, 1}},
		{Frame: 10, Translation: [3]float32{1, 2, 3}, Rotation: [4]float32{0, 0, 0, 1}},
	}

	var out bytes.Buffer
	if err := WriteCameraLog(&out, frames); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&out).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d; expected header + 2 rows", len(records))
	}
	if records[0][0] != "Time" || records[0][4] != "Yaw" {
		t.Errorf("header = %v", records[0])
	}

	// frames come out sorted, time relative to the first frame
	if records[1][0] != "0" || records[2][0] != "1" {
		t.Errorf("times = %v %v; expected 0 and 1", records[1][0], records[2][0])
	}

	// first sorted row is frame 10: x negated, identity rotation
	row := records[1]
	if row[1] != "-1" || row[2] != "2" || row[3] != "3" {
		t.Errorf("position = %v; expected -1 2 3", row[1:4])
	}
	for col := 4; col <= 6; col++ {
		if row[col] != "0" {
			t.Errorf("identity rotation column %d = %v; expected 0", col, row[col])
		}
	}
}

func TestWriteCameraLogYaw(t *testing.T) {
	// 90 degree rotation around the y axis
	s := float32(math.Sqrt(0.5))
	frames := []Keyframe{
		{Frame: 0, Rotation: [4]float32{0, s, 0, s}},
	}

	var out bytes.Buffer
	if err := WriteCameraLog(&out, frames); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&out).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	yaw, err := strconv.ParseFloat(records[1][4], 64)
	if err != nil {
		t.Fatal(err)
	}
	// asin is steep near 1, so the float32 quaternion resolves the 90
	// degree pitch singularity only to within a few hundredths of a degree
	if math.Abs(yaw-90) > 0.05 {
		t.Errorf("yaw = %v; expected ~90", yaw)
	}
}
