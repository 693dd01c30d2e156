package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
)

var (
	errInvalidGLTFVersion = errors.New("invalid glTF version: must be 2.x")
	errInvalidGLBMagic    = errors.New("invalid GLB magic number")
	errInvalidGLBVersion  = errors.New("invalid GLB version: must be 2")
	errMalformedGLB       = errors.New("malformed GLB container")
	errMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
	errInvalidBufferURI   = errors.New("invalid buffer URI")
	errBufferSizeMismatch = errors.New("buffer size mismatch")
)

const (
	glbHeaderSize      = 12
	glbChunkHeaderSize = 8
)

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	baseDir  string
	document *gltfDocument
	bin      []byte
}

// gltfParser reads a glTF JSON document or GLB container and resolves every buffer it
// declares into memory. It never looks at accessors; the extractors do that.
type gltfParser interface {
	// Parse reads a .gltf or .glb file. GLB is detected by extension or by magic number.
	// External buffers are resolved relative to the file's directory.
	//
	// Parameters:
	//   - path: path to the glTF or GLB file
	//
	// Returns:
	//   - error: error if the file cannot be read, decoded or its buffers resolved
	Parse(path string) error

	// ParseReader reads a document from r.
	//
	// Parameters:
	//   - r: reader containing glTF JSON or GLB data
	//   - isGLB: true if the data is a GLB container
	//   - baseDir: directory for relative buffer URIs, empty for the working directory
	//
	// Returns:
	//   - error: error if the data cannot be decoded or its buffers resolved
	ParseReader(r io.Reader, isGLB bool, baseDir string) error

	// Document returns the last successfully parsed document, or nil.
	//
	// Returns:
	//   - *gltfDocument: the document with buffer data filled in
	Document() *gltfDocument
}

var _ gltfParser = &gltfParserImpl{}

func newGLTFParser() gltfParser {
	return &gltfParserImpl{}
}

func (p *gltfParserImpl) Document() *gltfDocument {
	return p.document
}

func (p *gltfParserImpl) Parse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.parse(data, isGLBData(path, data), filepath.Dir(path))
}

func (p *gltfParserImpl) ParseReader(r io.Reader, isGLB bool, baseDir string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	return p.parse(data, isGLB, baseDir)
}

// parse decodes one document and resolves its buffers. Earlier state is dropped first.
func (p *gltfParserImpl) parse(data []byte, isGLB bool, baseDir string) error {
	*p = gltfParserImpl{baseDir: baseDir}

	jsonData := data
	if isGLB {
		var err error
		if jsonData, p.bin, err = splitGLB(data); err != nil {
			return err
		}
	}

	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to decode glTF JSON: %w", err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return fmt.Errorf("%w: got %q", errInvalidGLTFVersion, doc.Asset.Version)
	}

	for i := range doc.Buffers {
		buf, err := p.resolveBuffer(i, &doc.Buffers[i])
		if err != nil {
			return fmt.Errorf("buffer %d: %w", i, err)
		}
		doc.Buffers[i].Data = buf
	}

	p.document = &doc
	return nil
}

// isGLBData reports whether a file holds a GLB container.
func isGLBData(path string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		return true
	}
	return len(data) >= 4 && binary.LittleEndian.Uint32(data) == gltfGLBMagic
}

// splitGLB returns the JSON and BIN chunk payloads of a GLB container. Only the first
// chunk of each type counts; unknown chunk types are skipped.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
func splitGLB(data []byte) (jsonChunk, binChunk []byte, err error) {
	var header gltfGLBHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, nil, fmt.Errorf("%w: header: %w", errMalformedGLB, err)
	}
	switch {
	case header.Magic != gltfGLBMagic:
		return nil, nil, errInvalidGLBMagic
	case header.Version != gltfGLBVersion:
		return nil, nil, errInvalidGLBVersion
	case header.Length < glbHeaderSize || uint64(header.Length) > uint64(len(data)):
		return nil, nil, fmt.Errorf("%w: header declares %d bytes, file holds %d", errMalformedGLB, header.Length, len(data))
	}

	body := data[glbHeaderSize:header.Length]
	for len(body) > 0 {
		if len(body) < glbChunkHeaderSize {
			return nil, nil, fmt.Errorf("%w: %d trailing bytes", errMalformedGLB, len(body))
		}
		var chunk gltfGLBChunkHeader
		if err := binary.Read(bytes.NewReader(body[:glbChunkHeaderSize]), binary.LittleEndian, &chunk); err != nil {
			return nil, nil, fmt.Errorf("%w: chunk header: %w", errMalformedGLB, err)
		}
		body = body[glbChunkHeaderSize:]
		if uint64(chunk.ChunkLength) > uint64(len(body)) {
			return nil, nil, fmt.Errorf("%w: chunk of %d bytes with %d left", errMalformedGLB, chunk.ChunkLength, len(body))
		}

		payload := body[:chunk.ChunkLength]
		body = body[chunk.ChunkLength:]
		switch {
		case chunk.ChunkType == gltfGLBChunkJSON && jsonChunk == nil:
			jsonChunk = payload
		case chunk.ChunkType == gltfGLBChunkBIN && binChunk == nil:
			binChunk = payload
		}
	}

	if jsonChunk == nil {
		return nil, nil, errMissingJSONChunk
	}
	return jsonChunk, binChunk, nil
}

// resolveBuffer returns the bytes behind one buffer. Inline data (the GLB BIN chunk or a
// data URI) shorter than byteLength fails with common.ErrInvalidEmbeddedDataLength; a
// short external file fails with errBufferSizeMismatch.
func (p *gltfParserImpl) resolveBuffer(i int, buf *gltfBuffer) ([]byte, error) {
	var (
		data   []byte
		inline bool
		err    error
	)
	switch {
	case buf.URI == "":
		if i != 0 || p.bin == nil {
			return nil, errors.New("no URI and no GLB binary chunk")
		}
		data, inline = p.bin, true
	case strings.HasPrefix(buf.URI, "data:"):
		data, err = decodeDataURI(buf.URI)
		inline = true
	default:
		data, err = p.readBufferFile(buf.URI)
	}
	if err != nil {
		return nil, err
	}

	if len(data) < buf.ByteLength {
		if inline {
			return nil, fmt.Errorf("inline data holds %d of %d bytes: %w", len(data), buf.ByteLength, common.ErrInvalidEmbeddedDataLength)
		}
		return nil, fmt.Errorf("file holds %d of %d bytes: %w", len(data), buf.ByteLength, errBufferSizeMismatch)
	}
	return data, nil
}

// readBufferFile reads an external buffer. URIs are percent-encoded relative paths.
func (p *gltfParserImpl) readBufferFile(uri string) ([]byte, error) {
	name, err := url.PathUnescape(uri)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", errInvalidBufferURI, uri, err)
	}
	data, err := os.ReadFile(filepath.Join(p.baseDir, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read buffer %q: %w", uri, err)
	}
	return data, nil
}

// decodeDataURI decodes data:[<mediatype>];base64,<payload>.
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: no payload separator", errInvalidBufferURI)
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: %q is not base64 encoded", errInvalidBufferURI, header)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidBufferURI, err)
	}
	return data, nil
}
