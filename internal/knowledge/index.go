// Package knowledge indexes the financial-literacy corpus for retrieval.
// Lookups run FTS5 first and fall back to an in-memory TF-IDF index when
// full-text search finds nothing or is unavailable.
package knowledge

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	maxFeatures = 1000
	minScore    = 0.1
	defaultTopK = 3
)

// Document is one indexed corpus entry.
type Document struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Result pairs a document with its relevance score.
type Result struct {
	Document *Document `json:"document"`
	Score    float64   `json:"score"`
}

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "have": true,
	"how": true, "i": true, "in": true, "is": true, "it": true, "its": true,
	"my": true, "of": true, "on": true, "or": true, "that": true, "the": true,
	"this": true, "to": true, "was": true, "what": true, "when": true,
	"where": true, "which": true, "who": true, "will": true, "with": true,
	"you": true, "your": true,
}

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// tokenize lowercases, splits and removes stop words, then appends
// bigrams of the surviving tokens.
func tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	var tokens []string
	for _, t := range raw {
		if !stopWords[t] {
			tokens = append(tokens, t)
		}
	}
	n := len(tokens)
	for i := 0; i+1 < n; i++ {
		tokens = append(tokens, tokens[i]+" "+tokens[i+1])
	}
	return tokens
}

// tfidfIndex is a dense-vocabulary TF-IDF index with cosine scoring.
type tfidfIndex struct {
	docs    []*Document
	vocab   map[string]int
	idf     []float64
	vectors [][]float64
}

// buildIndex constructs the index over docs. The vocabulary keeps the
// maxFeatures terms with the highest document frequency.
func buildIndex(docs []*Document) *tfidfIndex {
	idx := &tfidfIndex{docs: docs, vocab: map[string]int{}}
	if len(docs) == 0 {
		return idx
	}

	docTokens := make([][]string, len(docs))
	df := map[string]int{}
	for i, d := range docs {
		docTokens[i] = tokenize(d.Title + " " + d.Content)
		seen := map[string]bool{}
		for _, t := range docTokens[i] {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	type termFreq struct {
		term string
		df   int
	}
	terms := make([]termFreq, 0, len(df))
	for t, n := range df {
		terms = append(terms, termFreq{t, n})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].df != terms[j].df {
			return terms[i].df > terms[j].df
		}
		return terms[i].term < terms[j].term
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	idx.idf = make([]float64, len(terms))
	total := float64(len(docs))
	for i, t := range terms {
		idx.vocab[t.term] = i
		idx.idf[i] = math.Log((total+1)/(float64(t.df)+1)) + 1
	}

	idx.vectors = make([][]float64, len(docs))
	for i := range docs {
		idx.vectors[i] = idx.vectorize(docTokens[i])
	}
	return idx
}

// vectorize builds a unit-normalized TF-IDF vector for the tokens.
func (idx *tfidfIndex) vectorize(tokens []string) []float64 {
	vec := make([]float64, len(idx.vocab))
	for _, t := range tokens {
		if i, ok := idx.vocab[t]; ok {
			vec[i]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= idx.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// search returns up to topK documents with cosine similarity above
// minScore, best first.
func (idx *tfidfIndex) search(query string, topK int) []Result {
	if len(idx.docs) == 0 {
		return nil
	}
	if topK <= 0 {
		topK = defaultTopK
	}
	qv := idx.vectorize(tokenize(query))

	results := make([]Result, 0, len(idx.docs))
	for i, dv := range idx.vectors {
		var score float64
		for j := range qv {
			score += qv[j] * dv[j]
		}
		if score > minScore {
			results = append(results, Result{Document: idx.docs[i], Score: score})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}
