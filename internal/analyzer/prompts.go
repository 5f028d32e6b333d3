package analyzer

const scoringPrompt = `You are an expert video editor deciding which moments of a spoken video deserve an illustrative image overlay.

Speech segment: "%s"
Context (previous): "%s"
Context (next): "%s"

Consider:
- Is something concrete being described (people, places, objects, events)?
- Would an image significantly enhance viewer understanding?
- Avoid images for abstract concepts or filler statements.

Be conservative - only suggest images that truly add value.

Respond with JSON only:
{
    "needs_visualization": true or false,
    "importance_score": 1-10,
    "reasoning": "brief explanation",
    "image_prompt": "detailed image-generation prompt in English" or null
}`

const captionPrompt = `You are creating impactful on-screen captions for a vertical short-form video.

Speech segment: "%s"

Create a caption that captures the ESSENCE and KEY MESSAGE, not word-by-word subtitles.

Guidelines:
- Maximum %d characters
- Punchy and memorable, 1-2 short lines
- Title case or sentence case

Also classify the sentiment (it selects the caption color):
important, happy, sad, angry, neutral, or excited.

Respond with JSON only:
{
    "english_text": "the caption",
    "sentiment": "one of the labels above",
    "emphasis_words": ["word1", "word2"]
}`
