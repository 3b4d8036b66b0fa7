package render

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// wireHeaderFields is the number of uint32 length prefixes in an
// encoded RenderOutput: one per GPU batch, plus one for the JSON
// label trailer.
const wireHeaderFields = 5

// EncodeRenderOutput writes out as a single binary message a WebGL
// host can parse without a JSON round-trip for the bulk instance
// data: a fixed 20-byte header of five little-endian uint32 byte
// lengths (node annotations, link annotations, links, nodes, labels),
// followed by each batch's raw bytes in that same order — node
// annotations, link annotations, links, nodes, matching the
// back-to-front draw order RenderOutput documents — and finally the
// label batch JSON-encoded.
func EncodeRenderOutput(w io.Writer, out RenderOutput) error {
	nodeAnnots := out.NodeAnnotations.AsBytes()
	linkAnnots := out.LinkAnnotations.AsBytes()
	links := out.Links.AsBytes()
	nodes := out.Nodes.AsBytes()

	labels, err := json.Marshal(out.Labels.Labels)
	if err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}

	var header [wireHeaderFields * 4]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(len(nodeAnnots)))
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(linkAnnots)))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(links)))
	binary.LittleEndian.PutUint32(header[12:16], uint32(len(nodes)))
	binary.LittleEndian.PutUint32(header[16:20], uint32(len(labels)))

	for _, chunk := range [][]byte{header[:], nodeAnnots, linkAnnots, links, nodes, labels} {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("write render output: %w", err)
		}
	}
	return nil
}

// DecodeRenderOutput reverses EncodeRenderOutput. It is used by tests
// and by any in-process consumer that wants a RenderOutput back
// instead of forwarding the wire bytes to a client.
func DecodeRenderOutput(r io.Reader) (RenderOutput, error) {
	var header [wireHeaderFields * 4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return RenderOutput{}, fmt.Errorf("read render output header: %w", err)
	}
	lengths := make([]uint32, wireHeaderFields)
	for i := range lengths {
		lengths[i] = binary.LittleEndian.Uint32(header[i*4 : i*4+4])
	}

	readN := func(n uint32) ([]byte, error) {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("read render output body: %w", err)
		}
		return buf, nil
	}

	nodeAnnots, err := readN(lengths[0])
	if err != nil {
		return RenderOutput{}, err
	}
	linkAnnots, err := readN(lengths[1])
	if err != nil {
		return RenderOutput{}, err
	}
	links, err := readN(lengths[2])
	if err != nil {
		return RenderOutput{}, err
	}
	nodes, err := readN(lengths[3])
	if err != nil {
		return RenderOutput{}, err
	}
	labelsJSON, err := readN(lengths[4])
	if err != nil {
		return RenderOutput{}, err
	}

	var labels []TextLabel
	if len(labelsJSON) > 0 {
		if err := json.Unmarshal(labelsJSON, &labels); err != nil {
			return RenderOutput{}, fmt.Errorf("decode labels: %w", err)
		}
	}

	return RenderOutput{
		NodeAnnotations: RectBatch{Data: bytesToFloat32s(nodeAnnots)},
		LinkAnnotations: RectBatch{Data: bytesToFloat32s(linkAnnots)},
		Links:           LineBatch{Data: bytesToFloat32s(links)},
		Nodes:           LineBatch{Data: bytesToFloat32s(nodes)},
		Labels:          TextBatch{Labels: labels},
	}, nil
}

func bytesToFloat32s(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	out := make([]float32, len(data)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(data[i*4 : i*4+4])
		out[i] = math.Float32frombits(bits)
	}
	return out
}
