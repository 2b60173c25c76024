// Package prng implementa la fuente pseudoaleatoria determinista del sistema:
// una semilla FNV-1a de 32 bits derivada de una clave de texto y un stream
// mulberry32. Misma clave y mismo número de draws reproducen exactamente la
// misma secuencia entre procesos e implementaciones.
package prng

import "unicode/utf16"

const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619

	mulberryIncrement uint32 = 0x6D2B79F5
)

// Source es un generador mulberry32. El estado es local a cada instancia: dos
// fuentes con semillas distintas nunca interfieren.
type Source struct {
	state uint32
}

// NewSource deriva la semilla de key y devuelve una fuente lista para usar.
func NewSource(key string) *Source {
	return &Source{state: SeedFromString(key)}
}

// NewSourceFromSeed construye la fuente sobre una semilla ya derivada.
func NewSourceFromSeed(seed uint32) *Source {
	return &Source{state: seed}
}

// SeedFromString pliega las unidades de código UTF-16 de key con FNV-1a de
// 32 bits. Se itera sobre unidades UTF-16 (no runas ni bytes) para que la
// semilla coincida con la de clientes que indexan el texto por charCodeAt.
func SeedFromString(key string) uint32 {
	h := fnvOffsetBasis
	for _, cu := range utf16.Encode([]rune(key)) {
		h ^= uint32(cu)
		h *= fnvPrime
	}
	return h
}

// Float64 avanza el estado y devuelve el siguiente valor en [0, 1).
func (s *Source) Float64() float64 {
	s.state += mulberryIncrement
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / (1 << 32)
}
