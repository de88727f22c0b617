// Package translations хранит строки интерфейса бота (ru/ky).
package translations

import "fmt"

var texts = map[string]map[string]string{
	"ru": {
		"start.greeting":           "Привет, %s! 👋",
		"start.auto_deposit":       "⚡️ Автоматическое пополнение",
		"start.auto_withdraw":      "⚡️ Автоматический вывод",
		"start.working":            "🕐 Работаем круглосуточно",
		"start.support":            "Поддержка: %s",
		"start.bot_paused":         "⏸ Приём платежей временно приостановлен. Попробуйте позже.",
		"start.subscribe_required": "📢 Пожалуйста, подпишитесь на наш канал: %s",
		"start.subscribe_button":   "📢 Подписаться на канал",
		"start.check_subscription": "✅ Я подписался",
		"start.not_subscribed":     "Пожалуйста, сначала подпишитесь на канал",
		"start.default_name":       "kotik",

		"menu.deposit":     "💰 Пополнить",
		"menu.withdraw":    "💸 Вывести",
		"menu.instruction": "📖 Инструкция",
		"menu.language":    "🌐 Язык",

		"common.cancel":    "❌ Отмена",
		"common.cancelled": "❌ Операция отменена",
		"common.error":     "❌ Произошла ошибка. Попробуйте позже.",
		"common.unknown":   "Неизвестная команда. Используйте меню.",

		"language.select": "🌐 Выберите язык:",
		"language.saved":  "✅ Язык сохранён",

		"deposit.select_casino":      "🎰 Выберите букмекера:",
		"deposit.deposits_disabled":  "❌ Пополнения временно отключены",
		"deposit.no_casinos":         "❌ Нет доступных казино",
		"deposit.casino_disabled":    "❌ Это казино временно отключено",
		"deposit.active_request":     "⚠️ У вас уже есть активная заявка на пополнение (ID: #%s, создана %d мин. назад).\n\nПожалуйста, дождитесь обработки первой заявки перед созданием новой.",
		"deposit.enter_account_id":   "🆔 Введите ID вашего счёта в %s (только цифры):",
		"deposit.invalid_account_id": "❌ Пожалуйста, отправьте корректный ID счёта (только цифры)",
		"deposit.checking_player":    "🔍 Проверяю ID игрока...",
		"deposit.player_not_found":   "❌ Игрок с таким ID не найден. Проверьте ID и попробуйте ещё раз.",
		"deposit.enter_amount":       "💰 Введите сумму пополнения (от %s до %s KGS):",
		"deposit.invalid_amount":     "❌ Неверная сумма. Введите число от %s до %s KGS.",
		"deposit.generating_qr":      "⏳ Генерирую QR-код для оплаты...",
		"deposit.qr_error":           "❌ Не удалось сгенерировать QR-код. Попробуйте позже.",
		"deposit.qr_payment_info":    "💳 Оплата по QR-коду\n\n💰 Сумма: %s KGS\n🎰 Казино: %s\n🆔 ID счёта: %s\n\n⏱ Осталось времени: %s\n\nОтсканируйте QR-код или откройте банк кнопкой ниже, оплатите точную сумму и отправьте фото чека.",
		"deposit.select_bank":        "🏦 Из какого банка вы оплатили?",
		"deposit.invalid_bank":       "❌ Пожалуйста, выберите банк из списка",
		"deposit.invalid_receipt":    "❌ Пожалуйста, отправьте фото чека об оплате",
		"deposit.request_created":    "✅ Заявка на пополнение %s KGS создана!\n\n🎰 Казино: %s\n🆔 ID счёта: %s\n\nДеньги будут зачислены после проверки чека.",
		"deposit.timer_expired":      "⏰ Время на оплату истекло. Вы возвращены в главное меню.",

		"withdraw.select_casino":        "🎰 Выберите букмекера:",
		"withdraw.withdrawals_disabled": "❌ Выводы временно отключены",
		"withdraw.select_bank":          "🏦 Выберите банк для вывода из %s:",
		"withdraw.invalid_bank":         "❌ Пожалуйста, выберите банк из списка",
		"withdraw.enter_phone":          "📱 Введите номер телефона для вывода (%s, банк %s).\nФормат: +996XXXXXXXXX",
		"withdraw.invalid_phone":        "❌ Номер должен начинаться с +996",
		"withdraw.invalid_phone_format": "❌ Неверный формат номера. Пример: +996555123456",
		"withdraw.send_qr_photo":        "📷 Отправьте скриншот QR-кода вывода из казино",
		"withdraw.invalid_photo":        "❌ Пожалуйста, отправьте фото",
		"withdraw.enter_account_id":     "🆔 Введите ID вашего счёта в %s (только цифры):",
		"withdraw.invalid_account_id":   "❌ Пожалуйста, отправьте корректный ID счёта (только цифры)",
		"withdraw.enter_code":           "🔑 Введите код вывода",
		"withdraw.checking_code":        "🔍 Проверяю код вывода...",
		"withdraw.amount_not_found":     "⚠️ Сумма вывода не найдена. Проверьте код и попробуйте ещё раз.",
		"withdraw.amount_error":         "⚠️ Не удалось проверить сумму вывода. Попробуйте ещё раз.",
		"withdraw.not_created":          "Заявка не создана. Проверьте код вывода и попробуйте ещё раз.",
		"withdraw.request_created":      "✅ Ваша заявка на вывод %s KGS была отправлена!\n\n🎰 Казино: %s\n🏦 Банк: %s\n📱 Телефон: %s\n🆔 ID: %s\n\nВаша заявка будет обработана в ближайшее время. По вопросам: %s",
		"withdraw.error":                "❌ Не удалось создать заявку на вывод. Попробуйте позже.",

		"instruction.text": "📖 Как это работает:\n\n1. Нажмите «💰 Пополнить», выберите казино и введите ID счёта.\n2. Введите сумму — бот покажет QR-код для оплаты.\n3. Оплатите точную сумму в течение 5 минут и отправьте фото чека.\n4. Для вывода получите код в кассе казино и отправьте его боту.",
	},
	"ky": {
		"start.greeting":           "Салам, %s! 👋",
		"start.auto_deposit":       "⚡️ Автоматтык толтуруу",
		"start.auto_withdraw":      "⚡️ Автоматтык чыгаруу",
		"start.working":            "🕐 Күнү-түнү иштейбиз",
		"start.support":            "Колдоо: %s",
		"start.bot_paused":         "⏸ Төлөмдөр убактылуу токтотулду. Кийинчерээк аракет кылыңыз.",
		"start.subscribe_required": "📢 Биздин каналга жазылыңыз: %s",
		"start.subscribe_button":   "📢 Каналга жазылуу",
		"start.check_subscription": "✅ Мен жазылдым",
		"start.not_subscribed":     "Алгач каналга жазылыңыз",
		"start.default_name":       "баатыр",

		"menu.deposit":     "💰 Толтуруу",
		"menu.withdraw":    "💸 Чыгаруу",
		"menu.instruction": "📖 Көрсөтмө",
		"menu.language":    "🌐 Тил",

		"common.cancel":    "❌ Жокко чыгаруу",
		"common.cancelled": "❌ Аракет жокко чыгарылды",
		"common.error":     "❌ Ката кетти. Кийинчерээк аракет кылыңыз.",
		"common.unknown":   "Белгисиз буйрук. Менюну колдонуңуз.",

		"language.select": "🌐 Тилди тандаңыз:",
		"language.saved":  "✅ Тил сакталды",

		"deposit.select_casino":      "🎰 Букмекерди тандаңыз:",
		"deposit.deposits_disabled":  "❌ Толтуруу убактылуу өчүрүлгөн",
		"deposit.no_casinos":         "❌ Жеткиликтүү казино жок",
		"deposit.casino_disabled":    "❌ Бул казино убактылуу өчүрүлгөн",
		"deposit.active_request":     "⚠️ Сизде буга чейин активдүү толтуруу өтүнүчү бар (ID: #%s, %d мүн. мурун түзүлгөн).\n\nБиринчи өтүнүчтү иштетүүнү күтүңүз.",
		"deposit.enter_account_id":   "🆔 %s казиносундагы эсебиңиздин ID-син жазыңыз (сандар гана):",
		"deposit.invalid_account_id": "❌ Туура ID жөнөтүңүз (сандар гана)",
		"deposit.checking_player":    "🔍 Оюнчунун ID-син текшерүүдө...",
		"deposit.player_not_found":   "❌ Мындай ID менен оюнчу табылган жок. Кайра аракет кылыңыз.",
		"deposit.enter_amount":       "💰 Толтуруу суммасын жазыңыз (%s - %s KGS):",
		"deposit.invalid_amount":     "❌ Туура эмес сумма. %s - %s KGS аралыгында сан жазыңыз.",
		"deposit.generating_qr":      "⏳ Төлөм үчүн QR-код даярдалууда...",
		"deposit.qr_error":           "❌ QR-код түзүлгөн жок. Кийинчерээк аракет кылыңыз.",
		"deposit.qr_payment_info":    "💳 QR-код аркылуу төлөм\n\n💰 Сумма: %s KGS\n🎰 Казино: %s\n🆔 Эсеп ID: %s\n\n⏱ Калган убакыт: %s\n\nQR-кодду скандап же банкты баскыч менен ачып, так сумманы төлөп, чектин сүрөтүн жөнөтүңүз.",
		"deposit.select_bank":        "🏦 Кайсы банктан төлөдүңүз?",
		"deposit.invalid_bank":       "❌ Тизмеден банк тандаңыз",
		"deposit.invalid_receipt":    "❌ Төлөм чегинин сүрөтүн жөнөтүңүз",
		"deposit.request_created":    "✅ %s KGS толтурууга өтүнүч түзүлдү!\n\n🎰 Казино: %s\n🆔 Эсеп ID: %s\n\nЧек текшерилгенден кийин акча чегерилет.",
		"deposit.timer_expired":      "⏰ Төлөм убактысы бүттү. Башкы менюга кайтарылдыңыз.",

		"withdraw.select_casino":        "🎰 Букмекерди тандаңыз:",
		"withdraw.withdrawals_disabled": "❌ Чыгаруу убактылуу өчүрүлгөн",
		"withdraw.select_bank":          "🏦 %s үчүн чыгаруу банкын тандаңыз:",
		"withdraw.invalid_bank":         "❌ Тизмеден банк тандаңыз",
		"withdraw.enter_phone":          "📱 Чыгаруу үчүн телефон номерин жазыңыз (%s, банк %s).\nФормат: +996XXXXXXXXX",
		"withdraw.invalid_phone":        "❌ Номер +996 менен башталышы керек",
		"withdraw.invalid_phone_format": "❌ Номердин форматы туура эмес. Мисал: +996555123456",
		"withdraw.send_qr_photo":        "📷 Казинодогу чыгаруу QR-кодунун скриншотун жөнөтүңүз",
		"withdraw.invalid_photo":        "❌ Сүрөт жөнөтүңүз",
		"withdraw.enter_account_id":     "🆔 %s казиносундагы эсебиңиздин ID-син жазыңыз (сандар гана):",
		"withdraw.invalid_account_id":   "❌ Туура ID жөнөтүңүз (сандар гана)",
		"withdraw.enter_code":           "🔑 Чыгаруу кодун жазыңыз",
		"withdraw.checking_code":        "🔍 Чыгаруу кодун текшерүүдө...",
		"withdraw.amount_not_found":     "⚠️ Чыгаруу суммасы табылган жок. Кодду текшерип, кайра аракет кылыңыз.",
		"withdraw.amount_error":         "⚠️ Чыгаруу суммасын текшерүү мүмкүн болгон жок. Кайра аракет кылыңыз.",
		"withdraw.not_created":          "Өтүнүч түзүлгөн жок. Чыгаруу кодун текшерип, кайра аракет кылыңыз.",
		"withdraw.request_created":      "✅ %s KGS чыгарууга өтүнүчүңүз жөнөтүлдү!\n\n🎰 Казино: %s\n🏦 Банк: %s\n📱 Телефон: %s\n🆔 ID: %s\n\nӨтүнүчүңүз жакынкы убакта иштетилет. Суроолор боюнча: %s",
		"withdraw.error":                "❌ Чыгарууга өтүнүч түзүлгөн жок. Кийинчерээк аракет кылыңыз.",

		"instruction.text": "📖 Кантип иштейт:\n\n1. «💰 Толтуруу» басып, казинону тандап, эсеп ID-син жазыңыз.\n2. Сумманы жазыңыз — бот төлөм үчүн QR-код көрсөтөт.\n3. 5 мүнөттүн ичинде так сумманы төлөп, чектин сүрөтүн жөнөтүңүз.\n4. Чыгаруу үчүн казинонун кассасынан код алып, ботко жөнөтүңүз.",
	},
}

const DefaultLanguage = "ru"

var Languages = []struct {
	Code string
	Name string
}{
	{"ru", "🇷🇺 Русский"},
	{"ky", "🇰🇬 Кыргызча"},
}

// Text возвращает строку по ключу с подстановкой аргументов. Неизвестный
// язык или ключ откатывается на русский.
func Text(lang, key string, args ...interface{}) string {
	table, ok := texts[lang]
	if !ok {
		table = texts[DefaultLanguage]
	}
	template, ok := table[key]
	if !ok {
		template, ok = texts[DefaultLanguage][key]
		if !ok {
			return key
		}
	}
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

// WithdrawInstructions - инструкция по получению кода вывода; адрес кассы
// зависит от казино.
func WithdrawInstructions(casinoID, lang string) string {
	address := "📍(Город Бишкек, улица Bingo kg)"
	if casinoID == "888starz" {
		address = "📍(Город Бишкек, улица Киевская)"
	}

	if lang == "ky" {
		return "📍 Кайрылыңыз👇🏻\n📍1. Жөндөөлөр!\n📍2. Эсептен чыгаруу!\n📍3. Касса\n📍4. Чыгаруу суммасы!\n" +
			address + "\n📍5. Тастыктоо\n📍6. Кодду алуу!\n📍7. Бизге жөнөтүңүз"
	}
	return "📍 Заходим👇🏻\n📍1. Настройки!\n📍2. Вывести со счета!\n📍3. Касса\n📍4. Сумму для Вывода!\n" +
		address + "\n📍5. Подтвердить\n📍6. Получить Код!\n📍7. Отправить его нам"
}
