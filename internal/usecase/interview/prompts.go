package interview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

// Fixed interviewer lines used when the oracle cannot produce one. Opening
// and closing degrade to these; mid-interview failures roll back instead so
// the candidate can retry the answer.
const fallbackOpeningQuestion = "Hello! Thank you for joining us today. Could you please introduce yourself and tell me a bit about your background and experience?"

func fallbackClosingStatement(resumeContext map[string]any) string {
	name := candidateName(resumeContext, "you")
	return fmt.Sprintf("Thank %s for taking the time to interview with us today. We appreciate your thoughtful responses and sharing your experience. Our team will review the interview and be in touch regarding next steps. Have a great day!", name)
}

// candidateName looks up the candidate's name in the resume context
func candidateName(resumeContext map[string]any, fallback string) string {
	for _, key := range []string{"name", "Name"} {
		if v, ok := resumeContext[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}

func resumeJSON(resumeContext map[string]any) string {
	if len(resumeContext) == 0 {
		return "{}"
	}
	data, err := json.MarshalIndent(resumeContext, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// conversationText renders the turns the way the oracle sees them
func conversationText(turns []entities.Turn) string {
	var b strings.Builder
	for _, t := range turns {
		role := strings.ToUpper(string(t.Role[:1])) + string(t.Role[1:])
		fmt.Fprintf(&b, "%s: %s\n\n", role, t.Text)
	}
	return b.String()
}

func buildOpeningPrompt(resumeContext map[string]any) string {
	name := candidateName(resumeContext, "the candidate")
	return fmt.Sprintf(`You are an experienced HR interviewer conducting a job interview.
Your tone is professional, friendly, and engaging. Start with a warm introduction
and then ask the candidate to introduce themselves.

Based on the following resume information, create a personalized introduction
and opening question for %s.

Resume data: %s

Format your response as a natural introduction followed by asking the candidate to
introduce themselves and briefly describe their background and interests.
Keep it conversational and under 150 words.`, name, resumeJSON(resumeContext))
}

func buildAnalysisPrompt(answer string) string {
	return fmt.Sprintf(`Analyze the following answer from a job interview candidate:

"%s"

Analyze for:
1. Factual errors or incorrect technical information
2. Inappropriate language, profanity, or offensive content

Return a JSON object with these fields:
- "has_factual_errors": true/false
- "factual_error_details": description of errors if any (empty string if none)
- "has_inappropriate_language": true/false
- "inappropriate_language_details": description of inappropriate content if any (empty string if none)

Response format should be valid JSON only.`, answer)
}

func buildInappropriateCorrectionPrompt(answer, details string) string {
	return fmt.Sprintf(`As an interviewer, respond in a stern, professional tone to the following inappropriate language
used by a candidate during an interview:

Candidate's statement: "%s"

Issue: %s

Your response should:
1. Express clear disapproval in an angry but still professional tone
2. Explain why such language is inappropriate in a professional setting
3. Give the candidate a chance to reformulate their answer
4. Be direct and firm while maintaining professionalism

Keep your response under 100 words.`, answer, details)
}

func buildFactualCorrectionPrompt(answer, details string) string {
	return fmt.Sprintf(`As an interviewer, respond to the following factual errors or incorrect information
provided by a candidate during an interview:

Candidate's statement: "%s"

Issues identified: %s

Your response should:
1. Politely point out the inaccuracies
2. Provide the correct information
3. Ask the candidate if they'd like to revise their answer
4. Be constructive and educational rather than judgmental

Keep your response under 100 words.`, answer, details)
}

func buildNextQuestionPrompt(resumeContext map[string]any, turns []entities.Turn) string {
	return fmt.Sprintf(`You are an experienced HR interviewer conducting a job interview.
Ask insightful, relevant questions based on the candidate's resume and previous answers.
Your questions should help evaluate the candidate's skills, experience, and fit for roles
matching their background. Be conversational but professional. Ask only ONE question at a time.
Don't repeat questions already asked. Vary between technical, behavioral, and situational questions.

Here is the candidate's resume information: %s

Here's our conversation so far:

%s

Based on the resume and our conversation so far, generate the next interview question.
Ask only ONE clear, specific question. Ensure it flows naturally from the previous conversation.
Keep your question under 100 words.`, resumeJSON(resumeContext), conversationText(turns))
}

func buildClosingPrompt(resumeContext map[string]any) string {
	name := candidateName(resumeContext, "there")
	return fmt.Sprintf(`You are an experienced HR interviewer concluding a job interview.
Create a warm, professional closing statement addressed to %s, thanking them for their time.
Mention that you've gathered valuable insights about their experience and skills.
Inform them about next steps in general terms (e.g., 'the team will review', 'we will be in touch').

Generate the closing statement.
Keep it warm, professional, and under 100 words.`, name)
}

func buildFeedbackPrompt(transcript string) string {
	return fmt.Sprintf(`You are an experienced HR interviewer reviewing a finished job interview.

%s

Evaluate the candidate's performance across the whole conversation.

Return a JSON object with these fields:
- "strengths": list of short strings
- "areas_for_improvement": list of short strings
- "recommendations": list of short, actionable strings
- "communication_rating": integer 1-10
- "technical_rating": integer 1-10

Response format should be valid JSON only.`, transcript)
}
