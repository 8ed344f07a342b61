package heuristics

// latinPhrases and complexTerms feed the pro-se legalese detector:
// vocabulary a self-represented litigant rarely produces at volume.
var latinPhrases = []string{
	"inter alia", "prima facie", "res judicata", "sua sponte",
	"ab initio", "de novo", "sub judice", "ipso facto",
	"arguendo", "mutatis mutandis", "stare decisis", "in limine",
	"pro hac vice", "ex parte", "amicus curiae",
}

var complexTerms = []string{
	"hereinafter", "aforementioned", "heretofore", "thereunder",
	"whereby", "wherefore", "notwithstanding", "hereinabove",
	"thereto", "herein",
}

// proSeMarkers are caption and signature-block phrases that identify a
// self-represented filer when the submitter has not asserted pro-se status.
var proSeMarkers = []string{
	"pro se appellant",
	"pro se appellee",
	"appellant, pro se",
	"appellee, pro se",
	"plaintiff, pro se",
	"defendant, pro se",
	"petitioner, pro se",
	"respondent, pro se",
	"proceeding pro se",
	"appearing pro se",
	"in proper person",
	"self-represented",
}

// proceduralPhrases is the procedural-language set: routine posture
// vocabulary that a genuine brief about a real case almost always uses.
var proceduralPhrases = []string{
	"motion to dismiss",
	"motion for summary judgment",
	"summary judgment",
	"notice of appeal",
	"standard of review",
	"abuse of discretion",
	"final judgment",
	"trial court",
	"lower court",
	"preserved for review",
	"order granting",
	"order denying",
}

// explainerPhrases are hedging and signposting constructions typical of
// generated explanatory prose and rare in filed briefs.
var explainerPhrases = []string{
	"it is important to note",
	"it is worth noting",
	"it should be noted",
	"in other words",
	"to put it simply",
	"simply put",
	"in summary",
	"in conclusion",
	"to summarize",
	"this means that",
	"essentially",
	"in essence",
	"as previously mentioned",
	"as mentioned above",
	"generally speaking",
	"broadly speaking",
	"at its core",
	"first and foremost",
	"needless to say",
}

// buzzwordPhrases are confidence adjectives that demand authority; each
// occurrence without a nearby citation is suspicious.
var buzzwordPhrases = []string{
	"well-settled",
	"well settled",
	"well-established",
	"well established",
	"clearly established",
	"firmly established",
	"black-letter law",
	"axiomatic",
	"hornbook law",
	"beyond cavil",
}

// lyFalsePositives are words ending in "ly" that are not adverbs, so
// "family-owned" and the like never count as adverb hyphenation.
var lyFalsePositives = map[string]bool{
	"family": true, "early": true, "only": true, "friendly": true,
	"likely": true, "timely": true, "assembly": true, "supply": true,
	"apply": true, "reply": true, "july": true, "italy": true,
	"monopoly": true, "anomaly": true, "ally": true, "rally": true,
	"jelly": true, "bully": true, "folly": true, "tally": true,
	"holy": true, "ugly": true, "fly": true, "butterfly": true,
	"daily": true, "elderly": true, "weekly": true, "monthly": true,
	"yearly": true, "quarterly": true,
}
