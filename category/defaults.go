package category

import "github.com/ayodele/tempo/internal/session"

// defaultCategories is the built-in classification for common
// applications. It is loaded once into the Categorizer at
// construction and never mutated; user overrides live in a separate
// layer.
var defaultCategories = map[session.Category][]string{
	session.Productive: {
		"Visual Studio Code", "VSCode", "Code",
		"PyCharm", "IntelliJ", "Eclipse", "Sublime Text",
		"Terminal", "Console", "iTerm", "PowerShell",
		"Git", "GitHub Desktop",
		"Vim", "Emacs", "Nano",
		"Xcode", "Android Studio",
		"Postman", "Docker Desktop",
		"Microsoft Word", "Microsoft Excel", "Microsoft PowerPoint",
		"Google Docs", "Google Sheets",
		"Notion", "Obsidian", "Roam Research",
	},
	session.Neutral: {
		"Firefox", "Chrome", "Safari", "Edge", "Brave",
		"Thunderbird", "Mail", "Outlook",
		"Slack", "Microsoft Teams", "Zoom",
		"Finder", "Explorer", "File Manager",
		"Settings", "System Preferences",
		"Spotify", "Apple Music",
	},
	session.Distracting: {
		"YouTube", "Netflix", "Twitch", "Disney+",
		"Facebook", "Twitter", "Instagram", "TikTok",
		"Reddit", "Discord",
		"Steam", "Epic Games", "League of Legends",
		"WhatsApp", "Telegram", "Signal",
	},
}
