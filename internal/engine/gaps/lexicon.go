package gaps

// Pain-point categories and their keyword lexicon.
// Severity weights rank how damaging a category is when it shows up:
// emotional and technical complaints outrank nice-to-have requests.

// Category identifies a pain-point class.
type Category string

const (
	CategoryNegativeEmotion Category = "negative_emotion"
	CategoryTechnicalIssue  Category = "technical_issue"
	CategoryContentQuality  Category = "content_quality"
	CategoryLearningOutcome Category = "learning_outcome"
	CategoryUserExperience  Category = "user_experience"
	CategoryFeatureRequest  Category = "feature_request"
	CategoryPacing          Category = "pacing"
)

// categoryOrder fixes iteration order so extraction is deterministic.
var categoryOrder = []Category{
	CategoryNegativeEmotion,
	CategoryTechnicalIssue,
	CategoryContentQuality,
	CategoryLearningOutcome,
	CategoryUserExperience,
	CategoryFeatureRequest,
	CategoryPacing,
}

// severityWeights are fixed per category; severity never exceeds 1.0.
var severityWeights = map[Category]float64{
	CategoryNegativeEmotion: 1.0,
	CategoryTechnicalIssue:  0.9,
	CategoryContentQuality:  0.8,
	CategoryLearningOutcome: 0.7,
	CategoryUserExperience:  0.6,
	CategoryFeatureRequest:  0.5,
	CategoryPacing:          0.4,
}

// painLexicon maps each category to the lowercase keywords that signal it.
// Matching is plain substring over lowercased comment text; multi-word
// keywords are allowed.
var painLexicon = map[Category][]string{
	CategoryContentQuality: {
		"unclear", "incomplete", "too simple", "too complex", "not detailed",
		"inaccurate", "wrong", "skipped", "skipping", "missing", "shallow",
		"needs more", "not enough", "not thorough", "left out",
	},
	CategoryPacing: {
		"too fast", "too slow", "can't keep up", "cant keep up", "rushed",
		"dragging", "the pace", "talking speed",
	},
	CategoryUserExperience: {
		"ads", "ad break", "video quality", "resolution", "subtitles",
		"captions", "translation", "volume", "interface", "thumbnail",
	},
	CategoryTechnicalIssue: {
		"loading", "buffering", "lagging", "laggy", "crash", "black screen",
		"no sound", "audio sync", "out of sync", "glitch", "won't play",
	},
	CategoryFeatureRequest: {
		"please add", "i wish", "hope there", "would be great", "should include",
		"can you make", "need a", "if only", "feature request", "pdf",
	},
	CategoryLearningOutcome: {
		"don't understand", "dont understand", "can't follow", "cant follow",
		"too hard", "too basic", "boring", "not helpful", "didn't learn",
		"makes no sense", "lost me",
	},
	CategoryNegativeEmotion: {
		"frustrat", "confus", "disappoint", "hate", "annoying", "angry",
		"unsatisf", "upset", "terrible", "awful",
	},
}
