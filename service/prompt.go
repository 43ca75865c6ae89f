package service

import "fmt"

// Closed taxonomy embedded in the classification prompt. The amendment
// list is ordered; the topic list is alphabetical. Tags outside these
// lists are not requested.
const (
	amendmentTags = "First Amendment;Second Amendment;Third Amendment;Fourth Amendment;Fifth Amendment;Sixth Amendment;Seventh Amendment;Eighth Amendment;Ninth Amendment;Tenth Amendment;Eleventh Amendment;Thirteenth Amendment;Fourteenth Amendment;Fifteenth Amendment;Sixteenth Amendment;Nineteenth Amendment;Twenty-First Amendment;Twenty-Fourth Amendment;Twenty-Sixth Amendment"

	topicTags = "Abortion;Administrative Law;Antitrust;Bankruptcy;Business/Commerce;Capital Punishment;Civil Rights;Criminal Justice;Education;Election Law;Employment;Environment;Family Law;Federal Power;Healthcare;Immigration;Intellectual Property;International Law;LGBTQ Rights;Native American Law;National Security;Police Power;Privacy;Property Rights;State Rights;Taxation;Technology;Voting Rights"
)

const promptTemplate = `Analyze this Supreme Court decision and classify its political leaning on a 5-point scale.

Case: %s

Decision excerpt:
%s

Based on this decision, classify it as:
- "Very Conservative" - Strongly aligns with conservative legal principles (strict originalism, significant limitation of federal power, strong protection of gun rights/religious liberty, major restriction of abortion/regulatory power)
- "Conservative" - Moderately aligns with conservative legal principles
- "Center" - Balanced decision or doesn't clearly align with either ideology
- "Liberal" - Moderately aligns with liberal legal principles
- "Very Liberal" - Strongly aligns with liberal legal principles (broad constitutional interpretation, significant expansion of civil rights/federal power/environmental protection, strong restriction of gun rights)

Also identify relevant topic tags from this list (select ALL that apply, semicolon-separated):

AMENDMENTS (in order):
%s

OTHER TOPICS (alphabetical):
%s

Create notes for each selected tag with semicolon-delimited descriptions:
Format: TagName - brief description of how it applies to this case

Respond in this exact format:
Classification: [Very Conservative/Conservative/Center/Liberal/Very Liberal]
Confidence: [High/Medium/Low]
Tags: [tag1;tag2;tag3]
Notes: [Tag1 - description;Tag2 - description;Tag3 - description]
Summary: [1-2 paragraph summary of the case: what was the legal question, what did the Court decide, and what was the key reasoning?]
Reasoning: [1-2 sentence explanation of classification]

Be objective and base your analysis only on the legal reasoning in the decision.`

// BuildPrompt assembles the fixed classification prompt for one decision
func BuildPrompt(caseName, text string) string {
	return fmt.Sprintf(promptTemplate, caseName, text, amendmentTags, topicTags)
}
