// Package alias produces random pseudonyms of the form "Adjectif-Nom-NNNN".
package alias

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Lumineux", "Serein", "Mystique", "Étincelant", "Paisible",
	"Radieux", "Silencieux", "Brillant", "Doux", "Clair",
	"Apaisant", "Subtil", "Gracieux", "Tranquille", "Magnifique",
	"Élégant", "Délicat", "Harmonieux", "Cristallin", "Argenté",
	"Doré", "Nocturne", "Matinal", "Céleste", "Divin",
	"Enchanté", "Féerique", "Merveilleux", "Sublime", "Pur",
}

var nouns = []string{
	"Aurore", "Lune", "Étoile", "Nuage", "Vent",
	"Rivière", "Forêt", "Colline", "Horizon", "Crépuscule",
	"Brume", "Cascade", "Océan", "Montagne", "Vallée",
	"Prairie", "Jardin", "Lac", "Flamme", "Rosée",
	"Neige", "Pluie", "Arc-en-ciel", "Papillon", "Oiseau",
	"Cerf", "Renard", "Hibou", "Lys", "Rose",
}

// MaxNumber is the largest numeric suffix a generated alias can carry.
const MaxNumber = 9999

// NameGenerator is what the allocator needs; tests swap in fixed sequences.
type NameGenerator interface {
	Generate() string
}

type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a generator drawing from src. A nil src seeds from the clock.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{rnd: rand.New(src)}
}

func (g *Generator) Generate() string {
	g.mu.Lock()
	adjective := adjectives[g.rnd.Intn(len(adjectives))]
	noun := nouns[g.rnd.Intn(len(nouns))]
	number := g.rnd.Intn(MaxNumber + 1)
	g.mu.Unlock()

	return fmt.Sprintf("%s-%s-%04d", adjective, noun, number)
}

// Namespace is the number of distinct names Generate can return.
func Namespace() int {
	return len(adjectives) * len(nouns) * (MaxNumber + 1)
}
