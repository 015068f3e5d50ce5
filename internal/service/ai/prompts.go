package ai

import (
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

const questionPrompt = `You are an expert interviewer conducting a {interview_type_lower} interview for a {job_role} position in {domain}. 

Generate exactly {count} high-quality, relevant interview questions. Each question should be:
- Appropriate for the {interview_type_lower} interview type
- Relevant to the {job_role} role and {domain} domain
- Progressive in difficulty
- Designed to assess key competencies

Format your response as a numbered list (1., 2., 3., etc.) with only the questions, no additional text or explanations.`

const feedbackPrompt = `You are an expert interviewer providing detailed feedback for a {interview_type_lower} interview.

Interview Details:
- Role: {job_role}
- Domain: {domain}
- Interview Type: {interview_type}

Candidate's Responses:
{transcript}

Please provide a comprehensive evaluation including:

1. **Overall Performance**: Brief summary of the candidate's performance
2. **Strengths**: Key areas where the candidate excelled
3. **Areas for Improvement**: Specific areas that need development
4. **Technical/Domain Knowledge**: Assessment of relevant expertise (if applicable)
5. **Communication Skills**: How well the candidate articulated their thoughts
6. **Recommendations**: Actionable advice for improvement
7. **Overall Rating**: Rate the performance on a scale of 1-10 with justification

Please be constructive, specific, and provide actionable feedback that will help the candidate improve.`

func questionTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString, schema.UserMessage(questionPrompt))
}

func feedbackTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString, schema.UserMessage(feedbackPrompt))
}
