package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-ontography/engine/camera"
	"github.com/Carmen-Shannon/oxy-ontography/engine/light"
	"github.com/Carmen-Shannon/oxy-ontography/engine/model"
)

// includePrefix marks a line comment that is replaced by a registered struct definition:
//
//	//@oxy:include camera
const includePrefix = "@oxy:include"

// IncludeKey names a WGSL struct that shaders can include.
type IncludeKey string

const (
	IncludeCamera        IncludeKey = "camera"
	IncludeLighting      IncludeKey = "lighting"
	IncludeVertex        IncludeKey = "vertex"
	IncludeNodeInstance  IncludeKey = "node_instance"
	IncludeEdgeVertex    IncludeKey = "edge_vertex"
	IncludeEdgeStyle     IncludeKey = "edge_style"
	IncludeLabelInstance IncludeKey = "label_instance"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	registry map[IncludeKey]string
}

// PreProcessor expands include annotations in WGSL so the GPU struct definitions live next to
// the Go types that mirror them.
type PreProcessor interface {
	// Process replaces every include annotation with the registered struct source.
	// Each key is expanded at most once; repeated includes are dropped.
	//
	// Parameters:
	//   - source: raw WGSL
	//
	// Returns:
	//   - string: the expanded WGSL
	//   - error: for an unknown key or an annotation without one
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with every engine GPU struct registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[IncludeKey]string{
			IncludeCamera:        camera.GPUCameraUniformSource,
			IncludeLighting:      light.GPULightingSource,
			IncludeVertex:        model.GPUVertexSource,
			IncludeNodeInstance:  model.GPUNodeInstanceSource,
			IncludeEdgeVertex:    model.GPUEdgeVertexSource,
			IncludeEdgeStyle:     model.GPUEdgeStyleSource,
			IncludeLabelInstance: model.GPULabelInstanceSource,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[IncludeKey]bool)

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		comment, isComment := strings.CutPrefix(trimmed, "//")
		if !isComment {
			out = append(out, line)
			continue
		}
		args, ok := strings.CutPrefix(strings.TrimSpace(comment), includePrefix)
		if !ok {
			out = append(out, line)
			continue
		}

		fields := strings.Fields(args)
		if len(fields) != 1 {
			return "", fmt.Errorf("line %d: include takes exactly one struct name", i+1)
		}
		key := IncludeKey(fields[0])
		src, known := p.registry[key]
		if !known {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, key)
		}
		if !seen[key] {
			out = append(out, strings.TrimRight(src, "\n"))
			seen[key] = true
		}
	}
	return strings.Join(out, "\n"), nil
}
