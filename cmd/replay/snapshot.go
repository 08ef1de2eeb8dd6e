package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// snapshotFrame is one parsed frame_NNNNNN.txt file, spec.md §6's on-disk
// snapshot format.
type snapshotFrame struct {
	Time       float64
	NDim       int
	Positions  [][]float64
	Velocities [][]float64
}

// loadRun reads every frame_NNNNNN.txt in dir, in ascending index order,
// plus the sibling parameters.json.
func loadRun(dir string) ([]snapshotFrame, map[string]any, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read run directory %q: %w", dir, err)
	}

	var names []string
	for _, ent := range entries {
		if !ent.IsDir() && strings.HasPrefix(ent.Name(), "frame_") && strings.HasSuffix(ent.Name(), ".txt") {
			names = append(names, ent.Name())
		}
	}
	sort.Strings(names)

	frames := make([]snapshotFrame, 0, len(names))
	for _, name := range names {
		f, err := parseFrameFile(filepath.Join(dir, name))
		if err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", name, err)
		}
		frames = append(frames, f)
	}

	params, err := loadParameters(filepath.Join(dir, "parameters.json"))
	if err != nil {
		return nil, nil, err
	}

	return frames, params, nil
}

func parseFrameFile(path string) (snapshotFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return snapshotFrame{}, err
	}
	defer file.Close()

	var frame snapshotFrame
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "# Time:"):
			frame.Time, err = strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "# Time:")), 64)
			if err != nil {
				return snapshotFrame{}, fmt.Errorf("parse time: %w", err)
			}
		case strings.HasPrefix(line, "# Balls:"):
			// ball count is implied by the number of data lines that follow
		default:
			fields := strings.Fields(line)
			// <id> <x> <y> [<z>] <vx> <vy> [<vz>]
			coords := len(fields) - 1
			if frame.NDim == 0 {
				if coords == 4 {
					frame.NDim = 2
				} else if coords == 6 {
					frame.NDim = 3
				} else {
					return snapshotFrame{}, fmt.Errorf("unrecognized ball line %q", line)
				}
			}
			values := make([]float64, 0, coords)
			for _, tok := range fields[1:] {
				v, err := strconv.ParseFloat(tok, 64)
				if err != nil {
					return snapshotFrame{}, fmt.Errorf("parse ball line %q: %w", line, err)
				}
				values = append(values, v)
			}
			frame.Positions = append(frame.Positions, values[:frame.NDim])
			frame.Velocities = append(frame.Velocities, values[frame.NDim:])
		}
	}
	if err := scanner.Err(); err != nil {
		return snapshotFrame{}, err
	}
	return frame, nil
}

func loadParameters(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read parameters.json: %w", err)
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("parse parameters.json: %w", err)
	}
	return params, nil
}
