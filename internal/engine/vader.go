package engine

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/tonescan/tonescan/internal/model"
)

// VADER heuristic constants. These mirror the empirically derived values
// of the original VADER paper (Hutto & Gilbert, 2014).
const (
	// vaderNormalization is the alpha used to map the raw valence sum
	// into [-1, +1] via sum / sqrt(sum^2 + alpha).
	vaderNormalization = 15.0

	// boosterScale is the valence increment contributed by an intensity
	// booster word ("very", "extremely", ...).
	boosterScale = 0.293

	// negationScale dampens and flips valence when a negation precedes
	// a sentiment-laden word within the lookback window.
	negationScale = -0.74

	// capsBoost is the extra emphasis for ALL-CAPS sentiment words in
	// otherwise mixed-case text.
	capsBoost = 0.733

	// exclamationBoost is the per-"!" emphasis added to the raw sum,
	// capped at four exclamation marks.
	exclamationBoost = 0.292

	// negationWindow is how many preceding tokens are inspected for
	// negations and boosters.
	negationWindow = 3
)

// Vader is a local sentiment engine producing a compound score in
// [-1.0, +1.0]. It is deterministic, never fails, and completes in time
// linear in the input length. Empty text legitimately scores 0.
type Vader struct{}

// NewVader creates the VADER sentiment engine.
func NewVader() *Vader {
	return &Vader{}
}

// Name returns the engine identifier.
func (e *Vader) Name() string { return "vader" }

// Label returns the display column header.
func (e *Vader) Label() string {
	return "vader: " + e.Scale().Description
}

// Scale returns the compound score range.
func (e *Vader) Scale() model.Scale {
	return model.Scale{
		Min:         -1.0,
		Max:         1.0,
		Description: "-1.0 (negative emotion) to +1.0 (positive emotion)",
	}
}

// Score computes the compound sentiment of the text.
//
// Algorithm: look up each token's valence in the lexicon, adjust it for
// preceding boosters and negations within a three-token window and for
// ALL-CAPS emphasis, add exclamation emphasis to the raw sum, then
// normalize the sum into [-1, +1].
func (e *Vader) Score(_ context.Context, text string) (float64, error) {
	tokens := tokenize(text)
	mixed := hasMixedCase(tokens)

	var sum float64
	for i, tok := range tokens {
		valence, ok := vaderLexicon[tok.lower]
		if !ok {
			continue
		}

		if tok.allCaps && mixed {
			if valence > 0 {
				valence += capsBoost
			} else {
				valence -= capsBoost
			}
		}

		for dist := 1; dist <= negationWindow && i-dist >= 0; dist++ {
			prev := tokens[i-dist].lower
			if boost, ok := vaderBoosters[prev]; ok {
				scaled := boost * boosterDistanceScale(dist)
				if valence < 0 {
					scaled = -scaled
				}
				valence += scaled
			}
			if vaderNegations[prev] {
				valence *= negationScale
			}
		}

		sum += valence
	}

	if sum != 0 {
		emphasis := exclamationEmphasis(text)
		if sum > 0 {
			sum += emphasis
		} else {
			sum -= emphasis
		}
	}

	return clamp(sum/math.Sqrt(sum*sum+vaderNormalization), -1.0, 1.0), nil
}

// boosterDistanceScale discounts boosters by their distance from the
// sentiment word: the adjacent token counts fully, farther ones less.
func boosterDistanceScale(dist int) float64 {
	switch dist {
	case 1:
		return 1.0
	case 2:
		return 0.95
	default:
		return 0.9
	}
}

// exclamationEmphasis returns the emphasis contribution of exclamation
// marks, capped at four.
func exclamationEmphasis(text string) float64 {
	n := strings.Count(text, "!")
	if n > 4 {
		n = 4
	}
	return float64(n) * exclamationBoost
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// token is one whitespace-delimited word with its case profile.
type token struct {
	lower   string
	allCaps bool
}

// tokenize splits text into words, stripping surrounding punctuation but
// keeping interior apostrophes so contractions ("don't") survive intact.
func tokenize(text string) []token {
	fields := strings.Fields(text)
	tokens := make([]token, 0, len(fields))
	for _, f := range fields {
		word := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if word == "" {
			continue
		}
		tokens = append(tokens, token{
			lower:   strings.ToLower(word),
			allCaps: isAllCaps(word),
		})
	}
	return tokens
}

// isAllCaps reports whether a word is entirely upper case and at least
// two letters long (single letters like "I" carry no emphasis).
func isAllCaps(word string) bool {
	if len(word) < 2 {
		return false
	}
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// hasMixedCase reports whether the text contains both ALL-CAPS and
// normal-case words. Emphasis only applies when caps stand out.
func hasMixedCase(tokens []token) bool {
	var caps, plain int
	for _, t := range tokens {
		if t.allCaps {
			caps++
		} else {
			plain++
		}
	}
	return caps > 0 && plain > 0
}

// vaderNegations are words that flip and dampen the valence of a
// following sentiment word.
var vaderNegations = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true, "nor": true,
	"cannot": true, "can't": true, "cant": true, "won't": true, "wont": true,
	"don't": true, "dont": true, "doesn't": true, "doesnt": true,
	"didn't": true, "didnt": true, "isn't": true, "isnt": true,
	"wasn't": true, "wasnt": true, "aren't": true, "arent": true,
	"shouldn't": true, "shouldnt": true, "wouldn't": true, "wouldnt": true,
	"couldn't": true, "couldnt": true, "without": true, "nothing": true,
	"nowhere": true, "nobody": true, "none": true, "rarely": true,
	"seldom": true, "hardly": true,
}

// vaderBoosters scale the intensity of a following sentiment word.
// Positive values intensify, negative values dampen.
var vaderBoosters = map[string]float64{
	"absolutely": boosterScale, "amazingly": boosterScale, "awfully": boosterScale,
	"completely": boosterScale, "considerably": boosterScale, "decidedly": boosterScale,
	"deeply": boosterScale, "enormously": boosterScale, "entirely": boosterScale,
	"especially": boosterScale, "exceptionally": boosterScale, "extremely": boosterScale,
	"fabulously": boosterScale, "fully": boosterScale, "greatly": boosterScale,
	"highly": boosterScale, "hugely": boosterScale, "incredibly": boosterScale,
	"intensely": boosterScale, "majorly": boosterScale, "more": boosterScale,
	"most": boosterScale, "particularly": boosterScale, "purely": boosterScale,
	"quite": boosterScale, "really": boosterScale, "remarkably": boosterScale,
	"so": boosterScale, "substantially": boosterScale, "thoroughly": boosterScale,
	"totally": boosterScale, "tremendously": boosterScale, "unbelievably": boosterScale,
	"unusually": boosterScale, "utterly": boosterScale, "very": boosterScale,

	"almost": -boosterScale, "barely": -boosterScale, "kinda": -boosterScale,
	"less": -boosterScale, "little": -boosterScale, "marginally": -boosterScale,
	"occasionally": -boosterScale, "partly": -boosterScale, "scarcely": -boosterScale,
	"slightly": -boosterScale, "somewhat": -boosterScale, "sorta": -boosterScale,
}

// vaderLexicon maps words to their mean valence on the [-4, +4] scale used
// by the VADER lexicon. This is the high-frequency subset relevant to
// short free-form lines; unknown words simply contribute nothing.
var vaderLexicon = map[string]float64{
	// Positive
	"admire": 2.6, "adore": 2.9, "amazing": 2.8, "awesome": 3.1,
	"beautiful": 2.9, "best": 3.2, "better": 1.9, "bliss": 2.7,
	"brilliant": 2.8, "calm": 1.3, "celebrate": 2.7, "charming": 2.2,
	"cheerful": 2.5, "comfort": 1.5, "confident": 2.2, "cool": 1.3,
	"delight": 2.9, "delighted": 2.9, "eager": 1.6, "ecstatic": 3.3,
	"elegant": 2.1, "encourage": 2.0, "enjoy": 2.2, "enjoyed": 2.3,
	"excellent": 2.7, "excited": 2.1, "fabulous": 2.9, "fantastic": 2.6,
	"fine": 0.8, "flawless": 2.7, "fortunate": 2.1, "free": 1.5,
	"friendly": 2.2, "fun": 2.3, "funny": 1.9, "generous": 2.3,
	"glad": 2.0, "glorious": 2.8, "good": 1.9, "gorgeous": 2.8,
	"grateful": 2.4, "great": 3.1, "happy": 2.7, "heaven": 2.3,
	"helpful": 1.8, "honest": 2.3, "hope": 1.9, "hopeful": 2.3,
	"impressed": 2.1, "impressive": 2.3, "incredible": 2.6, "inspire": 2.6,
	"interesting": 1.7, "joy": 2.8, "kind": 2.4, "laugh": 2.6,
	"like": 1.5, "liked": 1.8, "love": 3.2, "loved": 2.9,
	"lovely": 2.8, "loyal": 2.2, "lucky": 2.4, "magnificent": 3.0,
	"marvelous": 3.0, "nice": 1.8, "optimistic": 2.4, "outstanding": 3.1,
	"perfect": 2.7, "pleasant": 2.3, "pleased": 2.1, "positive": 2.3,
	"pretty": 2.2, "proud": 2.2, "relaxed": 1.9, "relieved": 1.9,
	"respect": 2.1, "rich": 2.3, "safe": 1.9, "satisfied": 2.0,
	"smart": 1.7, "smile": 2.1, "splendid": 2.9, "strong": 2.3,
	"stunning": 2.6, "succeed": 2.6, "success": 2.7, "successful": 2.8,
	"super": 2.9, "superb": 3.0, "support": 1.7, "sweet": 2.0,
	"terrific": 2.9, "thank": 1.9, "thankful": 2.7, "thrilled": 3.0,
	"triumph": 2.9, "trust": 2.3, "useful": 1.9, "valuable": 2.1,
	"vibrant": 2.2, "victory": 2.8, "warm": 1.6, "welcome": 2.0,
	"win": 2.8, "winner": 2.8, "wonderful": 2.7, "worthy": 1.9, "wow": 2.8,

	// Negative
	"abuse": -3.2, "afraid": -2.2, "angry": -2.3, "annoyed": -1.8,
	"annoying": -1.7, "anxious": -1.9, "appalling": -2.9, "ashamed": -2.1,
	"atrocious": -3.1, "awful": -2.0, "bad": -2.5, "boring": -1.3,
	"broken": -1.8, "cheat": -2.6, "cruel": -2.9, "crushed": -2.1,
	"damage": -2.2, "dead": -3.3, "depressed": -2.6, "despair": -2.9,
	"destroy": -2.6, "dirty": -2.0, "disappointed": -2.2, "disappointing": -2.2,
	"disaster": -3.1, "disgust": -2.9, "disgusting": -2.4, "dishonest": -2.7,
	"dislike": -1.6, "dreadful": -2.8, "dull": -1.6, "evil": -3.4,
	"fail": -2.5, "failed": -2.3, "failure": -2.6, "fake": -1.9,
	"fear": -2.2, "fool": -1.9, "foolish": -1.9, "fraud": -2.9,
	"frustrated": -2.4, "greedy": -2.4, "grief": -2.6, "gross": -2.1,
	"hate": -2.7, "hated": -2.8, "hateful": -3.0, "horrible": -2.5,
	"horrific": -3.0, "hurt": -2.4, "idiot": -2.3, "ignorant": -2.1,
	"inferior": -1.9, "insult": -2.3, "jealous": -2.0, "kill": -3.6,
	"liar": -2.7, "lose": -2.0, "loser": -2.4, "lost": -1.7,
	"lousy": -2.3, "mad": -2.2, "mess": -1.6, "miserable": -2.8,
	"missing": -1.4, "mistake": -1.7, "nasty": -2.6, "negative": -2.0,
	"nervous": -1.8, "obnoxious": -2.4, "offensive": -2.4, "pain": -2.3,
	"painful": -2.4, "pathetic": -2.5, "poor": -2.1, "problem": -1.7,
	"rotten": -2.6, "rude": -2.5, "sad": -2.1, "scam": -2.7,
	"scared": -2.2, "shame": -2.1, "sick": -2.3, "sorry": -0.3,
	"stink": -2.2, "stress": -1.8, "stupid": -2.4, "suck": -2.2,
	"sucks": -2.2, "terrible": -2.1, "threat": -2.4, "tragedy": -3.0,
	"trash": -2.0, "ugly": -2.6, "unfair": -2.3, "unfortunate": -2.1,
	"unhappy": -2.3, "upset": -2.0, "useless": -2.1, "vicious": -2.7,
	"violent": -3.0, "waste": -1.8, "weak": -1.9, "worried": -1.9,
	"worry": -1.9, "worse": -2.6, "worst": -3.1, "wrong": -2.1,
}
