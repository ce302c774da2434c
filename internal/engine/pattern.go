package engine

import (
	"context"

	"github.com/tonescan/tonescan/internal/model"
)

// Pattern lexicon heuristic constants, following the Pattern/TextBlob
// averaged-annotation model.
const (
	// patternNegationScale is applied to a sense's polarity when a
	// negation precedes it: "not good" is mildly negative, not the
	// mirror image of "good".
	patternNegationScale = -0.5

	// patternIntensifierScale multiplies a sense's polarity when an
	// intensity booster precedes it.
	patternIntensifierScale = 1.3
)

// patternSense is one lexicon entry: how positive/negative a word reads
// and how subjective its use is.
type patternSense struct {
	polarity     float64
	subjectivity float64
}

// Polarity is a local engine scoring emotional direction in [-1.0, +1.0]
// as the average polarity of known words, with negation and intensifier
// adjustment. Text with no known words legitimately scores 0.
type Polarity struct{}

// NewPolarity creates the polarity engine.
func NewPolarity() *Polarity {
	return &Polarity{}
}

// Name returns the engine identifier.
func (e *Polarity) Name() string { return "polarity" }

// Label returns the display column header.
func (e *Polarity) Label() string {
	return "polarity: " + e.Scale().Description
}

// Scale returns the polarity range.
func (e *Polarity) Scale() model.Scale {
	return model.Scale{
		Min:         -1.0,
		Max:         1.0,
		Description: "-1.0 (negative) to +1.0 (positive)",
	}
}

// Score averages the polarity of recognized words.
func (e *Polarity) Score(_ context.Context, text string) (float64, error) {
	tokens := tokenize(text)

	var sum float64
	var hits int
	for i, tok := range tokens {
		sense, ok := patternLexicon[tok.lower]
		if !ok {
			continue
		}
		p := sense.polarity
		if i > 0 {
			prev := tokens[i-1].lower
			if vaderNegations[prev] {
				p *= patternNegationScale
			} else if _, boosted := vaderBoosters[prev]; boosted {
				p *= patternIntensifierScale
			}
		}
		sum += p
		hits++
	}

	if hits == 0 {
		return 0, nil
	}
	return clamp(sum/float64(hits), -1.0, 1.0), nil
}

// Subjectivity is a local engine scoring how opinionated the text is in
// [0.0, +1.0], as the average subjectivity of known words. It shares the
// pattern lexicon with the Polarity engine but is an independent metric
// with its own scale.
type Subjectivity struct{}

// NewSubjectivity creates the subjectivity engine.
func NewSubjectivity() *Subjectivity {
	return &Subjectivity{}
}

// Name returns the engine identifier.
func (e *Subjectivity) Name() string { return "subjectivity" }

// Label returns the display column header.
func (e *Subjectivity) Label() string {
	return "subjectivity: " + e.Scale().Description
}

// Scale returns the subjectivity range.
func (e *Subjectivity) Scale() model.Scale {
	return model.Scale{
		Min:         0.0,
		Max:         1.0,
		Description: "0.0 (objective) to +1.0 (subjective)",
	}
}

// Score averages the subjectivity of recognized words.
func (e *Subjectivity) Score(_ context.Context, text string) (float64, error) {
	tokens := tokenize(text)

	var sum float64
	var hits int
	for _, tok := range tokens {
		sense, ok := patternLexicon[tok.lower]
		if !ok {
			continue
		}
		sum += sense.subjectivity
		hits++
	}

	if hits == 0 {
		return 0, nil
	}
	return clamp(sum/float64(hits), 0.0, 1.0), nil
}

// patternLexicon maps adjectives and common evaluative words to averaged
// (polarity, subjectivity) annotations in the Pattern style. Unknown words
// contribute nothing to either metric.
var patternLexicon = map[string]patternSense{
	"amazing":       {0.6, 0.9},
	"awesome":       {1.0, 1.0},
	"awful":         {-1.0, 1.0},
	"bad":           {-0.7, 0.67},
	"beautiful":     {0.85, 1.0},
	"best":          {1.0, 0.3},
	"better":        {0.5, 0.5},
	"boring":        {-1.0, 1.0},
	"brilliant":     {0.9, 0.9},
	"broken":        {-0.4, 0.5},
	"cheap":         {-0.4, 0.7},
	"clean":         {0.37, 0.55},
	"clever":        {0.6, 0.8},
	"cold":          {-0.3, 0.65},
	"comfortable":   {0.55, 0.75},
	"correct":       {0.5, 0.5},
	"crazy":         {-0.6, 0.9},
	"cruel":         {-0.9, 0.95},
	"delicious":     {1.0, 1.0},
	"dirty":         {-0.6, 0.8},
	"disappointing": {-0.6, 0.7},
	"disgusting":    {-1.0, 1.0},
	"dreadful":      {-1.0, 1.0},
	"dull":          {-0.4, 0.7},
	"easy":          {0.43, 0.83},
	"excellent":     {1.0, 1.0},
	"exciting":      {0.45, 0.8},
	"fair":          {0.7, 0.9},
	"fake":          {-0.5, 0.6},
	"fantastic":     {0.4, 0.9},
	"fast":          {0.2, 0.6},
	"fine":          {0.42, 0.58},
	"friendly":      {0.47, 0.75},
	"fun":           {0.3, 0.2},
	"funny":         {0.25, 0.85},
	"good":          {0.7, 0.6},
	"great":         {0.8, 0.75},
	"happy":         {0.8, 1.0},
	"hard":          {-0.29, 0.54},
	"helpful":       {0.3, 0.4},
	"honest":        {0.6, 0.9},
	"horrible":      {-1.0, 1.0},
	"impossible":    {-0.5, 1.0},
	"impressive":    {1.0, 1.0},
	"incredible":    {0.9, 0.9},
	"interesting":   {0.5, 0.5},
	"lazy":          {-0.4, 0.7},
	"lovely":        {0.5, 0.7},
	"lucky":         {0.55, 0.75},
	"mean":          {-0.31, 0.69},
	"mediocre":      {-0.34, 0.66},
	"miserable":     {-1.0, 1.0},
	"nasty":         {-0.8, 0.9},
	"new":           {0.14, 0.45},
	"nice":          {0.6, 1.0},
	"old":           {0.1, 0.2},
	"outstanding":   {1.0, 1.0},
	"painful":       {-0.7, 0.9},
	"pathetic":      {-0.8, 0.95},
	"perfect":       {1.0, 1.0},
	"pleasant":      {0.73, 0.87},
	"poor":          {-0.4, 0.6},
	"pretty":        {0.25, 0.75},
	"quick":         {0.33, 0.54},
	"reliable":      {0.5, 0.6},
	"rotten":        {-0.8, 0.9},
	"rude":          {-0.75, 0.9},
	"sad":           {-0.5, 1.0},
	"safe":          {0.5, 0.5},
	"scary":         {-0.6, 0.95},
	"silly":         {-0.25, 0.9},
	"simple":        {0.2, 0.36},
	"slow":          {-0.3, 0.39},
	"smart":         {0.6, 0.9},
	"special":       {0.36, 0.57},
	"strange":       {-0.15, 0.85},
	"strong":        {0.43, 0.73},
	"stupid":        {-0.8, 0.9},
	"superb":        {1.0, 1.0},
	"terrible":      {-1.0, 1.0},
	"terrific":      {0.8, 1.0},
	"ugly":          {-0.7, 1.0},
	"unfair":        {-0.7, 0.9},
	"unhappy":       {-0.6, 1.0},
	"unreliable":    {-0.5, 0.6},
	"useful":        {0.3, 0.2},
	"useless":       {-0.5, 0.6},
	"weak":          {-0.4, 0.6},
	"weird":         {-0.3, 0.9},
	"wonderful":     {1.0, 1.0},
	"worst":         {-1.0, 1.0},
	"wrong":         {-0.5, 0.7},
}
