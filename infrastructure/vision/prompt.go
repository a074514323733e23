package vision

// DefaultPrompt is the structured instruction sent to both providers.
const DefaultPrompt = `Analyze this image in comprehensive detail following this exact structure:

Summary: Provide a one-sentence overview that captures the essence of the image.

Detailed Description:
Break down the image into relevant sections such as:

Person/People: (if applicable) Describe age range, appearance, clothing, pose, expression, and what they might be doing or feeling.

Setting: Describe the environment, location type, and physical surroundings.

Objects/Elements: Identify and describe key objects, structures, or elements in the scene.

Background: Describe what's visible in the background - buildings, landscapes, sky, etc.

Foreground: Describe elements in the immediate foreground.

Colors and Lighting: Analyze the color palette, lighting conditions, and visual tone.

Atmosphere and Mood: Describe the overall feeling, mood, and emotional tone of the image. What impression does it convey?

Be thorough, specific, and descriptive. Organize the information clearly under these headings.`

func promptOrDefault(p string) string {
	if p == "" {
		return DefaultPrompt
	}
	return p
}
