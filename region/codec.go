package region

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// regionDescriptor mirrors one entry of the JSON config file. Pointer fields
// distinguish "absent" from "zero" so missing required fields are detected
// instead of defaulting to zero values. Unknown fields are ignored by the
// decoder for forward compatibility.
type regionDescriptor struct {
	X          *int    `json:"x"`
	Y          *int    `json:"y"`
	Width      *int    `json:"width"`
	Height     *int    `json:"height"`
	BlurType   *string `json:"blur_type"`
	Intensity  *int    `json:"intensity"`
	PIIType    *string `json:"pii_type"`
	StartFrame *int    `json:"start_frame"`
	EndFrame   *int    `json:"end_frame"`
}

// regionRecord is the concrete shape written by Save.
type regionRecord struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	BlurType   string `json:"blur_type"`
	Intensity  int    `json:"intensity"`
	PIIType    string `json:"pii_type"`
	StartFrame int    `json:"start_frame"`
	EndFrame   int    `json:"end_frame"`
}

type configFile struct {
	Regions []regionDescriptor `json:"regions"`
}

type configRecord struct {
	Regions []regionRecord `json:"regions"`
}

// Load reads a region config from r. It is fail-fast: the first descriptor
// with a missing required field or out-of-range value aborts the load with
// an error wrapping ErrMalformedConfig that names the region index and
// field. Nothing is skipped or coerced.
//
// Required fields: x, y, width, height, blur_type, intensity. Optional with
// defaults: pii_type (""), start_frame (0), end_frame (OpenEnd).
func Load(r io.Reader) (*Set, error) {
	var cfg configFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}

	set := NewSet()
	for i, d := range cfg.Regions {
		reg, err := d.toRegion()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Load",
				"region":   i,
				"error":    err.Error(),
			}).Error("Rejecting malformed region descriptor")
			return nil, fmt.Errorf("%w: region %d: %v", ErrMalformedConfig, i, err)
		}
		// Add re-runs Validate; descriptors already validated cannot fail here.
		if err := set.Add(reg); err != nil {
			return nil, fmt.Errorf("%w: region %d: %v", ErrMalformedConfig, i, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"regions":  set.Len(),
	}).Info("Region config loaded")

	return set, nil
}

// toRegion materializes a descriptor, applying defaults for optional fields
// and validating everything else.
func (d regionDescriptor) toRegion() (Region, error) {
	for _, f := range []struct {
		name    string
		present bool
	}{
		{"x", d.X != nil},
		{"y", d.Y != nil},
		{"width", d.Width != nil},
		{"height", d.Height != nil},
		{"blur_type", d.BlurType != nil},
		{"intensity", d.Intensity != nil},
	} {
		if !f.present {
			return Region{}, fmt.Errorf("missing required field %q", f.name)
		}
	}

	blurType, err := ParseBlurType(*d.BlurType)
	if err != nil {
		return Region{}, err
	}

	reg := Region{
		X:          *d.X,
		Y:          *d.Y,
		Width:      *d.Width,
		Height:     *d.Height,
		BlurType:   blurType,
		Intensity:  *d.Intensity,
		StartFrame: 0,
		EndFrame:   OpenEnd,
	}
	if d.PIIType != nil {
		reg.PIIType = *d.PIIType
	}
	if d.StartFrame != nil {
		reg.StartFrame = *d.StartFrame
	}
	if d.EndFrame != nil {
		reg.EndFrame = *d.EndFrame
	}

	if err := reg.Validate(); err != nil {
		return Region{}, err
	}
	return reg, nil
}

// Save writes the set to w in the shared JSON descriptor format. Save is a
// pure serialization of current state: Load(Save(s)) reproduces an equal
// ordered set.
func (s *Set) Save(w io.Writer) error {
	out := configRecord{Regions: make([]regionRecord, 0, len(s.regions))}
	for _, r := range s.regions {
		out.Regions = append(out.Regions, regionRecord{
			X:          r.X,
			Y:          r.Y,
			Width:      r.Width,
			Height:     r.Height,
			BlurType:   string(r.BlurType),
			Intensity:  r.Intensity,
			PIIType:    r.PIIType,
			StartFrame: r.StartFrame,
			EndFrame:   r.EndFrame,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding region config: %w", err)
	}
	return nil
}

// LoadFile loads a region config from path.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening region config: %w", err)
	}
	defer f.Close()

	set, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return set, nil
}

// SaveFile writes the set to path, creating or truncating it.
func (s *Set) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating region config: %w", err)
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing region config: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "SaveFile",
		"path":     path,
		"regions":  s.Len(),
	}).Info("Region config saved")

	return nil
}
