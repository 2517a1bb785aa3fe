// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds, persists, and loads the embedding index: one
// L2-normalized vector per document plus positionally aligned metadata.
// Implements: prd003-index (R1-R3);
//
//	docs/ARCHITECTURE § Index.
package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/news-engine/pkg/types"
)

const (
	indexDir     = "index"
	vectorsFile  = "embeddings.f32"
	metadataFile = "metadata.json"
)

// vectorsMagic identifies the vector block format. Bump the trailing digit
// on incompatible layout changes.
var vectorsMagic = [8]byte{'N', 'E', 'W', 'S', 'I', 'D', 'X', '1'}

// Index is the in-memory form of the persisted artifacts. The i-th row of
// Vectors corresponds exactly to Docs[i]. A loaded Index is read-only;
// rebuilds produce a wholly new one.
type Index struct {
	// Stamp ties the two artifacts of one build together. The loader
	// rejects a vectors/metadata pair with different stamps.
	Stamp uint64

	// BuiltAt is the UTC build time.
	BuiltAt time.Time

	// Model is the embedding provider identity the vectors were built
	// with (e.g. "ollama/nomic-embed-text").
	Model string

	// Dim is the shared vector dimension D.
	Dim int

	// Vectors holds N rows of D float32 values, unit L2 norm each.
	Vectors [][]float32

	// Docs holds the N metadata records in row order.
	Docs []types.Document
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.Docs) }

// metadataEnvelope is the on-disk form of the metadata block.
type metadataEnvelope struct {
	BuildStamp uint64           `json:"build_stamp"`
	BuiltAt    time.Time        `json:"built_at"`
	Model      string           `json:"model"`
	Documents  []types.Document `json:"documents"`
}

// Write persists ix under dataDir/index/ as the two aligned artifacts.
// Both files are written to temp names and renamed on completion; the
// shared build stamp lets Load reject a half-replaced pair (R2.3).
func Write(dataDir string, ix *Index) error {
	dir := filepath.Join(dataDir, indexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	if err := writeVectors(dir, ix); err != nil {
		return err
	}
	return writeMetadata(dir, ix)
}

func writeVectors(dir string, ix *Index) error {
	tmp, err := os.CreateTemp(dir, ".vectors-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp vector file: %w", err)
	}
	tmpPath := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%s: %w", step, err)
	}

	if _, err := tmp.Write(vectorsMagic[:]); err != nil {
		return fail("writing vector header", err)
	}
	header := make([]byte, 16)
	binary.LittleEndian.PutUint64(header[0:8], ix.Stamp)
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(ix.Vectors)))
	binary.LittleEndian.PutUint32(header[12:16], uint32(ix.Dim))
	if _, err := tmp.Write(header); err != nil {
		return fail("writing vector header", err)
	}

	// Row-major float32, little endian: one row per document in build order.
	row := make([]byte, 4*ix.Dim)
	for _, vec := range ix.Vectors {
		for i, x := range vec {
			binary.LittleEndian.PutUint32(row[4*i:], math.Float32bits(x))
		}
		if _, err := tmp.Write(row); err != nil {
			return fail("writing vector row", err)
		}
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing vector file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(dir, vectorsFile)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing vector file: %w", err)
	}
	return nil
}

func writeMetadata(dir string, ix *Index) error {
	env := metadataEnvelope{
		BuildStamp: ix.Stamp,
		BuiltAt:    ix.BuiltAt,
		Model:      ix.Model,
		Documents:  ix.Docs,
	}
	data, err := json.MarshalIndent(&env, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".metadata-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp metadata file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing metadata file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(dir, metadataFile)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing metadata file: %w", err)
	}
	return nil
}

// Load reads the persisted artifacts under dataDir/index/ and verifies the
// structural invariants: matching build stamps, vector/metadata alignment,
// uniform dimension, and unique document ids (R3.1-R3.4). Missing
// artifacts are a precondition failure naming the index stage; invariant
// violations are corruption.
func Load(dataDir string) (*Index, error) {
	dir := filepath.Join(dataDir, indexDir)

	env, err := loadMetadata(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}
	stamp, dim, vectors, err := loadVectors(filepath.Join(dir, vectorsFile))
	if err != nil {
		return nil, err
	}

	if stamp != env.BuildStamp {
		return nil, fmt.Errorf("%w: vector block stamp %d does not match metadata stamp %d: rebuild the index", types.ErrCorruptIndex, stamp, env.BuildStamp)
	}
	if len(vectors) != len(env.Documents) {
		return nil, fmt.Errorf("%w: %d vectors but %d metadata records: rebuild the index", types.ErrCorruptIndex, len(vectors), len(env.Documents))
	}

	seen := make(map[string]bool, len(env.Documents))
	for _, doc := range env.Documents {
		if seen[doc.ID] {
			return nil, fmt.Errorf("%w: duplicate document id %q: rebuild the index", types.ErrCorruptIndex, doc.ID)
		}
		seen[doc.ID] = true
	}

	return &Index{
		Stamp:   env.BuildStamp,
		BuiltAt: env.BuiltAt,
		Model:   env.Model,
		Dim:     dim,
		Vectors: vectors,
		Docs:    env.Documents,
	}, nil
}

func loadMetadata(path string) (*metadataEnvelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("index metadata %s: %w: run index first", path, types.ErrPreconditionNotMet)
		}
		return nil, fmt.Errorf("reading index metadata: %w", err)
	}
	var env metadataEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: parsing index metadata: %v", types.ErrCorruptIndex, err)
	}
	return &env, nil
}

func loadVectors(path string) (stamp uint64, dim int, vectors [][]float32, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil, fmt.Errorf("index vector block %s: %w: run index first", path, types.ErrPreconditionNotMet)
		}
		return 0, 0, nil, fmt.Errorf("reading vector block: %w", err)
	}

	if len(data) < 24 || [8]byte(data[:8]) != vectorsMagic {
		return 0, 0, nil, fmt.Errorf("%w: vector block has no valid header", types.ErrCorruptIndex)
	}

	stamp = binary.LittleEndian.Uint64(data[8:16])
	n := int(binary.LittleEndian.Uint32(data[16:20]))
	dim = int(binary.LittleEndian.Uint32(data[20:24]))

	body := data[24:]
	if dim <= 0 && n > 0 {
		return 0, 0, nil, fmt.Errorf("%w: vector block declares dimension %d", types.ErrCorruptIndex, dim)
	}
	if len(body) != 4*n*dim {
		return 0, 0, nil, fmt.Errorf("%w: vector block holds %d bytes, expected %d for %dx%d", types.ErrCorruptIndex, len(body), 4*n*dim, n, dim)
	}

	flat := make([]float32, n*dim)
	for i := range flat {
		flat[i] = math.Float32frombits(binary.LittleEndian.Uint32(body[4*i:]))
	}

	vectors = make([][]float32, n)
	for i := range vectors {
		vectors[i] = flat[i*dim : (i+1)*dim : (i+1)*dim]
	}
	return stamp, dim, vectors, nil
}
