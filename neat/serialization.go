package neat

import (
	"encoding/json"
	"fmt"
	"os"
)

// snapshotVersion is stamped onto every leaf of the snapshot schema. It has
// never changed; a version on load other than this one, on any document, is
// rejected as ErrMalformedSnapshot rather than guessed at.
const snapshotVersion = 0

type geneDoc struct {
	Version    int     `json:"version"`
	Into       int32   `json:"into"`
	Out        int32   `json:"out"`
	Weight     float32 `json:"weight"`
	Innovation int32   `json:"innovation"`
	Enabled    bool    `json:"enabled"`
}

type genomeDoc struct {
	Version       int                `json:"version"`
	Fitness       int32              `json:"fitness"`
	MaxNeuron     int32              `json:"maxNeuron"`
	MutationRates map[string]float32 `json:"mutationRates"`
	Genes         []geneDoc          `json:"genes"`
}

type speciesDoc struct {
	Version    int         `json:"version"`
	TopFitness int32       `json:"topFitness"`
	Staleness  int32       `json:"staleness"`
	Genomes    []genomeDoc `json:"genomes"`
}

type poolDoc struct {
	Version    int          `json:"version"`
	RunID      string       `json:"runId"`
	Generation int32        `json:"generation"`
	MaxFitness int32        `json:"maxFitness"`
	Species    []speciesDoc `json:"species"`
}

func geneToDoc(g Gene) geneDoc {
	return geneDoc{
		Version:    snapshotVersion,
		Into:       int32(g.Into),
		Out:        int32(g.Out),
		Weight:     g.Weight,
		Innovation: int32(g.Innovation),
		Enabled:    g.Enabled,
	}
}

func geneFromDoc(d geneDoc) Gene {
	return Gene{
		Into:       NeuronId(d.Into),
		Out:        NeuronId(d.Out),
		Weight:     d.Weight,
		Innovation: uint32(d.Innovation),
		Enabled:    d.Enabled,
	}
}

func genomeToDoc(g *Genome) genomeDoc {
	doc := genomeDoc{
		Version:       snapshotVersion,
		Fitness:       g.Fitness,
		MaxNeuron:     int32(g.MaxNeuron),
		MutationRates: g.MutationRates,
	}
	for _, gene := range g.Genes {
		doc.Genes = append(doc.Genes, geneToDoc(gene))
	}
	return doc
}

func genomeFromDoc(d genomeDoc) *Genome {
	g := &Genome{
		Fitness:       d.Fitness,
		MaxNeuron:     NeuronId(d.MaxNeuron),
		MutationRates: d.MutationRates,
	}
	for _, gd := range d.Genes {
		g.Genes = append(g.Genes, geneFromDoc(gd))
	}
	return g
}

func speciesToDoc(s *Species) speciesDoc {
	doc := speciesDoc{
		Version:    snapshotVersion,
		TopFitness: s.TopFitness,
		Staleness:  int32(s.Staleness),
	}
	for _, g := range s.Genomes {
		doc.Genomes = append(doc.Genomes, genomeToDoc(g))
	}
	return doc
}

func speciesFromDoc(d speciesDoc) *Species {
	s := &Species{
		TopFitness: d.TopFitness,
		Staleness:  uint32(d.Staleness),
	}
	for _, gd := range d.Genomes {
		s.Genomes = append(s.Genomes, genomeFromDoc(gd))
	}
	return s
}

// MarshalPool renders p into the schema described in the snapshot format:
// nested Pool/Species/Genome/Gene documents, every leaf version-tagged.
func MarshalPool(p *Pool) ([]byte, error) {
	doc := poolDoc{
		Version:    snapshotVersion,
		RunID:      p.RunID,
		Generation: int32(p.Generation),
		MaxFitness: p.MaxFitness,
	}
	for _, s := range p.Species {
		doc.Species = append(doc.Species, speciesToDoc(s))
	}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalPool parses a snapshot into dst. Per the serialization contract:
// Species is cleared before reading, back-references never existed on
// Species/Genome to begin with (see DESIGN.md), cursors reset to (0,0,0),
// and Innovation resets to Outputs. Innovation is not recomputed from the
// loaded genes, so innovation numbers allocated after a load can repeat
// numbers already present in the snapshot.
func UnmarshalPool(data []byte, dst *Pool) error {
	var doc poolDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if doc.Version != snapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformedSnapshot, doc.Version)
	}
	for _, sd := range doc.Species {
		if sd.Version != snapshotVersion {
			return fmt.Errorf("%w: unsupported species version %d", ErrMalformedSnapshot, sd.Version)
		}
		for _, gd := range sd.Genomes {
			if gd.Version != snapshotVersion {
				return fmt.Errorf("%w: unsupported genome version %d", ErrMalformedSnapshot, gd.Version)
			}
			for _, ge := range gd.Genes {
				if ge.Version != snapshotVersion {
					return fmt.Errorf("%w: unsupported gene version %d", ErrMalformedSnapshot, ge.Version)
				}
			}
		}
	}

	dst.Species = nil
	for _, sd := range doc.Species {
		dst.Species = append(dst.Species, speciesFromDoc(sd))
	}
	if doc.RunID != "" {
		dst.RunID = doc.RunID
	}
	dst.Generation = uint32(doc.Generation)
	dst.MaxFitness = doc.MaxFitness
	dst.Innovation = Outputs
	dst.CurrentSpecies = 0
	dst.CurrentGenome = 0
	dst.CurrentFrame = 0
	return nil
}

// SavePool writes the canonical save file, pool.json.
func SavePool(p *Pool, dir string) error {
	return writeSnapshot(p, dir+"/pool.json")
}

// WriteBackup writes backup<generation>.json, called automatically at the
// end of every NewGeneration.
func WriteBackup(p *Pool) error {
	return writeSnapshot(p, fmt.Sprintf("backup%d.json", p.Generation))
}

// writeTemp writes temp.json, the diagnostic dump taken right after Init.
func writeTemp(p *Pool) error {
	return writeSnapshot(p, "temp.json")
}

func writeSnapshot(p *Pool, path string) error {
	data, err := MarshalPool(p)
	if err != nil {
		return fmt.Errorf("marshal pool snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot %q: %w", path, err)
	}
	return nil
}

// LoadPool reads a snapshot file into a freshly constructed Pool, wiring
// the caller-supplied rng and config (neither of which travels in the
// file).
func LoadPool(path string, cfg *Config, rng *Rng, inputSize uint32) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", path, err)
	}
	p := NewPool(cfg, rng, inputSize)
	if err := UnmarshalPool(data, p); err != nil {
		return nil, err
	}
	return p, nil
}
