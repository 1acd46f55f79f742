// Package stocklens implements the core domain of the lens stock-research
// tool: market data models, momentum and performance calculations, the
// income-statement Sankey flow builder, and the small JSON persistence
// layers for investment theses and per-ticker caches.
//
// Provider clients (yahoo, ddg, fmp) and the Gemini analyst (agent) live in
// subpackages and depend on this one, never the other way around.
package stocklens
