package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// SystemPromptV2 is the fixed persona injected on every generation call.
// It is never stored in session history.
const SystemPromptV2 = `Вы - помощник-агроном по виноградарству компании Ceres Pro. Ваша задача - отвечать на вопросы
пользователя о выращивании винограда, уходе за лозой, сортах, болезнях и обработках.
Никогда не упоминайте, что вы языковая модель или искусственный интеллект.
Отвечайте только на вопросы, связанные с виноградарством; вежливо возвращайте разговор к теме,
если вопрос не относится к ней.
По вопросам цен, наличия оборудования и условий покупки направляйте пользователя на официальный
сайт proceres.ru или к менеджерам компании.
Если в предоставленном контексте есть информация, используйте её для ответа.
Если информации недостаточно, опирайтесь на собственные знания.
Пишите ответ так, чтобы он был полезен и информативен.`

// User-facing advisory messages. Provider error details are logged, never shown.
const (
	MsgRateLimited = "Извините, достигнут лимит запросов к API.\nПожалуйста, подождите %s перед следующим запросом."
	MsgTokenLimit  = "Ваш запрос слишком длинный и превышает допустимый лимит токенов. " +
		"Пожалуйста, сократите текст и попробуйте снова."
	MsgGenericError = "Извините, произошла ошибка при обработке вашего запроса.\n" +
		"Пожалуйста, попробуйте позже или переформулируйте ваш вопрос."
	MsgEmptyQuery = "Пожалуйста, введите ваш вопрос."

	// Default wait hint when the provider gives none
	DefaultWaitHint = "несколько минут"
)

// Telegram bot texts
const (
	MsgWelcome = "Здравствуйте! Я ваш помощник-агроном по виноградарству компании Ceres Pro.\n" +
		"Задайте мне вопрос, и я постараюсь вам помочь.\n\n" +
		"Для доступа к дополнительным функциям используйте команду /menu.\n" +
		"Для завершения диалога используйте команду /exit."
	MsgHistoryCleared = "История диалога сброшена. Вы можете начать новый разговор."
	MsgFarewell       = "Спасибо за использование помощника-агронома. Удачи в виноградарстве!\n\n" +
		"Чтобы начать новый диалог, используйте команду /start."
	MsgMenu = "Доступные опции:"

	MsgAboutBot = "Vineyard Assistant Bot (VAB)\n\n" +
		"Специализированный бот-помощник по виноградарству.\n" +
		"Использует современные технологии AI для предоставления точной и полезной информации.\n\n" +
		"Version: 2.0\n" +
		"Created by: Ceres Pro"

	MsgAboutCompany = "Компания Ceres Pro | Метеосистемы для агрохозяйств\n" +
		"Ceres Pro — это не стандартная метеостанция, а индивидуально подобранное решение для вашего виноградника.\n\n" +
		"Техподдержка, сервис, гарантия:\n" +
		"г. Севастополь, ул. Хрусталёва, 74А\n\n" +
		"+7 (978) 858-55-25\n" +
		"info@proceres.ru\n" +
		"@pro_ceres\n" +
		"proceres.ru"
)
