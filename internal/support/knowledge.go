package support

// Option is a button-like affordance offered after a scripted reply,
// mapping a label to an action id that deterministically selects the next
// response.
type Option struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Entry is one knowledge-base record: case-insensitive keyword triggers, a
// scripted response, and the follow-up options offered with it. Entries are
// static, loaded once, and immutable for the process lifetime; declaration
// order matters because matching is first-match-wins.
type Entry struct {
	Keywords []string
	Response string
	FollowUp []Option
}

// Reserved action ids handled by the engine itself rather than the
// knowledge base.
const (
	ActionMainMenu       = "main-menu"
	ActionGettingStarted = "getting-started"
	ActionMoreHelp       = "more-help"
	ActionEndChat        = "end-chat"
	ActionRestart        = "restart"
)

// Scripted texts used by the engine's fixed transitions.
const (
	greetingText        = "Hello! 👋 Welcome to ADmyBRAND Support. I'm here to help you with anything you need."
	restartGreetingText = "Hello! 👋 Welcome back to ADmyBRAND Support. How can I help you today?"

	mainMenuText = "🏠 **Main Menu** - What would you like to help you with?"

	gettingStartedText = "🚀 **Getting Started Guide**\n\n1️⃣ Set up your dashboard\n2️⃣ Connect your data sources\n3️⃣ Create your first report\n4️⃣ Explore analytics features\n\nWould you like detailed steps for any of these?"

	moreHelpText = "💡 **Need More Help?**\n\nI'm here to assist you further! What else can I help you with?"

	fallbackText = "I understand you're looking for help! 🤔 Let me connect you with the right information."

	stillLearningText = "I'm still learning about that topic. Let me connect you with our support team for detailed assistance."

	feedbackHelpfulText    = "Great! 😊 Is there anything else I can help you with?"
	feedbackNotHelpfulText = "I'm sorry that wasn't helpful. 😔 Let me try a different approach or connect you with a human agent."
)

// conversationStarters is the fixed top-level menu offered in welcome mode.
func conversationStarters() []Option {
	return []Option{
		{Label: "🚀 Getting Started Guide", Action: ActionGettingStarted},
		{Label: "📊 Analytics Features", Action: "analytics"},
		{Label: "💰 Pricing & Plans", Action: "pricing"},
		{Label: "🔧 Technical Support", Action: "technical"},
		{Label: "📞 Contact Support", Action: "contact"},
		{Label: "👋 Close chat", Action: ActionEndChat},
	}
}

// genericOptions is offered after every scripted reply in chatting mode.
func genericOptions() []Option {
	return []Option{
		{Label: "💡 Do you have any other questions?", Action: ActionMoreHelp},
		{Label: "📞 Talk to a human agent", Action: "contact"},
		{Label: "👋 Close chat", Action: ActionEndChat},
	}
}

// gettingStartedOptions follows the getting-started guide.
func gettingStartedOptions() []Option {
	return []Option{
		{Label: "Dashboard setup", Action: "dashboard-setup"},
		{Label: "Connect data sources", Action: "data-sources"},
		{Label: "Create first report", Action: "first-report"},
		{Label: "Back to main menu", Action: ActionMainMenu},
	}
}

// moreHelpOptions follows the more-help prompt.
func moreHelpOptions() []Option {
	return []Option{
		{Label: "Different question", Action: ActionMainMenu},
		{Label: "Talk to human agent", Action: "contact"},
		{Label: "Browse all topics", Action: "browse-topics"},
		{Label: "👋 Close chat", Action: ActionEndChat},
	}
}

// fallbackEntry is synthesized for free-text input matching no entry.
func fallbackEntry() Entry {
	return Entry{
		Response: fallbackText,
		FollowUp: []Option{
			{Label: "📊 Analytics & Reports", Action: "analytics"},
			{Label: "💰 Pricing & Billing", Action: "pricing"},
			{Label: "🔧 Technical Support", Action: "technical"},
			{Label: "📞 Contact Human Agent", Action: "contact"},
		},
	}
}

// stillLearningEntry is synthesized for option ids matching no entry.
func stillLearningEntry() Entry {
	return Entry{
		Response: stillLearningText,
		FollowUp: []Option{
			{Label: "Contact support", Action: "contact"},
			{Label: "Back to main menu", Action: ActionMainMenu},
		},
	}
}

// DefaultKnowledgeBase returns the built-in FAQ table. Declaration order is
// load-bearing: several entries share keywords (e.g. "contact") and the
// first declared match always wins.
func DefaultKnowledgeBase() []Entry {
	return []Entry{
		{
			Keywords: []string{"hello", "hi", "hey", "start", "help"},
			Response: "Hello! 👋 I'm your support assistant. I'm here to help you with everything related to your analytics dashboard.",
			FollowUp: []Option{
				{Label: "📊 View Analytics Features", Action: "analytics"},
				{Label: "💰 Pricing Information", Action: "pricing"},
				{Label: "🔧 Technical Support", Action: "technical"},
				{Label: "📞 Contact Human Agent", Action: "contact"},
			},
		},
		{
			Keywords: []string{"analytics", "report", "data", "metrics", "statistics"},
			Response: "Our analytics dashboard provides comprehensive insights:\n\n📈 **Real-time Metrics**\n• Performance tracking\n• Campaign analytics\n• Revenue monitoring\n\n📊 **Custom Reports**\n• Export in JSON, CSV, PDF\n• Scheduled reports\n• Advanced filtering\n\n🎯 **Traffic Analysis**\n• Source breakdown\n• Device analytics\n• User behavior tracking",
			FollowUp: []Option{
				{Label: "How to generate reports?", Action: "reports-guide"},
				{Label: "Setting up dashboards", Action: "dashboard-setup"},
				{Label: "Data export options", Action: "export-help"},
				{Label: "Back to main menu", Action: ActionMainMenu},
			},
		},
		{
			Keywords: []string{"pricing", "cost", "price", "plan", "billing", "payment"},
			Response: "💰 **Our Pricing Plans**\n\n🌟 **Starter Plan - $29/month**\n• Basic analytics\n• 10,000 page views\n• Email support\n\n⭐ **Professional - $79/month**\n• Advanced features\n• 100,000 page views\n• Priority support\n• Custom reports\n\n🚀 **Enterprise - $199/month**\n• Full feature suite\n• Unlimited page views\n• Dedicated support\n• API access\n• White-label options",
			FollowUp: []Option{
				{Label: "Compare plan features", Action: "compare-plans"},
				{Label: "Billing questions", Action: "billing-help"},
				{Label: "Upgrade my account", Action: "upgrade"},
				{Label: "Contact sales team", Action: "sales"},
			},
		},
		{
			Keywords: []string{"account", "settings", "profile", "password", "login"},
			Response: "🔧 **Account Management Guide**\n\n👤 **Profile Settings**\n• Update personal information\n• Change password\n• Email preferences\n\n🔐 **Security**\n• Two-factor authentication\n• API key management\n• Login activity\n\n📧 **Notifications**\n• Email alerts\n• Report schedules\n• System updates",
			FollowUp: []Option{
				{Label: "Reset password", Action: "password-reset"},
				{Label: "Setup 2FA", Action: "2fa-setup"},
				{Label: "Manage notifications", Action: "notifications"},
				{Label: "API documentation", Action: "api-docs"},
			},
		},
		{
			Keywords: []string{"technical", "bug", "error", "issue", "problem", "not working"},
			Response: "🔧 **Technical Support**\n\n🚨 **Quick Fixes**\n• Clear browser cache\n• Refresh the page\n• Check internet connection\n• Try incognito mode\n\n🛠️ **Common Issues**\n• Dashboard not loading\n• Data not updating\n• Export problems\n• Login difficulties\n\nIf issues persist, our technical team is here to help!",
			FollowUp: []Option{
				{Label: "Report a bug", Action: "bug-report"},
				{Label: "Performance issues", Action: "performance"},
				{Label: "Browser compatibility", Action: "browser-help"},
				{Label: "Contact tech support", Action: "tech-support"},
			},
		},
		{
			Keywords: []string{"features", "how to", "tutorial", "guide", "usage"},
			Response: "📚 **Feature Guides**\n\n🎯 **Key Features**\n• Real-time dashboard\n• Custom report builder\n• Campaign tracking\n• Data visualization\n• API integration\n\n📖 **Learning Resources**\n• Video tutorials\n• Step-by-step guides\n• Best practices\n• Use case examples",
			FollowUp: []Option{
				{Label: "Watch tutorials", Action: "tutorials"},
				{Label: "Feature walkthrough", Action: "walkthrough"},
				{Label: "Best practices", Action: "best-practices"},
				{Label: "Advanced features", Action: "advanced"},
			},
		},
		{
			Keywords: []string{"contact", "support", "email", "phone", "human"},
			Response: "📞 **Get In Touch**\n\n💬 **Live Support**\n• Chat: Available 9 AM - 6 PM EST\n• Response time: < 5 minutes\n\n📧 **Email Support**\n• support@admybrand.com\n• Response time: < 2 hours\n\n📱 **Phone Support**\n• +1 (555) 123-4567\n• Available 24/7 for emergencies",
			FollowUp: []Option{
				{Label: "Start live chat", Action: "live-chat"},
				{Label: "Send email", Action: "email-support"},
				{Label: "Schedule callback", Action: "callback"},
				{Label: "Emergency support", Action: "emergency"},
			},
		},
		{
			Keywords: []string{"integration", "api", "connect", "sync", "webhook"},
			Response: "🔌 **Integration Options**\n\n⚡ **API Access**\n• RESTful API\n• Real-time webhooks\n• SDK libraries\n• Comprehensive docs\n\n🔗 **Popular Integrations**\n• Google Analytics\n• Facebook Ads\n• Zapier (500+ apps)\n• Slack notifications\n• Custom solutions",
			FollowUp: []Option{
				{Label: "API documentation", Action: "api-docs"},
				{Label: "Integration examples", Action: "integration-examples"},
				{Label: "Webhook setup", Action: "webhook-help"},
				{Label: "Custom integration", Action: "custom-integration"},
			},
		},
	}
}
