package catalog

import (
	"time"

	"github.com/winterfair/fairbot/internal/domain"
)

// Default returns the built-in fair content: seven pavilions, their tasks
// and the facts unlocked by completing them. A catalog file, when
// configured, overrides this content at startup and on change.
func Default() *Content {
	return &Content{
		Pavilions: defaultPavilions(),
		Tasks:     defaultTasks(),
		Facts:     defaultFacts(),
	}
}

func defaultPavilions() []*domain.Pavilion {
	return []*domain.Pavilion{
		{ID: 1, Name: "Варежки и шарфы", Emoji: "🧤", Location: "У главного входа", Price: 0, Reward: 10,
			Description: "Тёплые варежки, шарфы и шапки для гостей ярмарки.", Atmosphere: "Снег падает за окном, тёплый свет ламп освещает полки.", TasksCount: 4},
		{ID: 2, Name: "Мороженое и какао", Emoji: "🍦", Location: "Центральная аллея", Price: 30, Reward: 12,
			Description: "Пломбир в вафельных рожках и горячее какао.", Atmosphere: "Холодный воздух из витрины смешивается с ароматом какао.", TasksCount: 4},
		{ID: 3, Name: "Ёлочные игрушки", Emoji: "🎄", Location: "Площадь с ёлкой", Price: 45, Reward: 15,
			Description: "Шары, гирлянды и свечи для главной ёлки.", Atmosphere: "Огоньки гирлянд отражаются в стеклянных шарах.", TasksCount: 4},
		{ID: 4, Name: "Пряничный домик", Emoji: "🍪", Location: "Сладкий ряд", Price: 60, Reward: 18,
			Description: "Имбирные пряники и конфеты ручной работы.", Atmosphere: "Пахнет корицей, имбирём и свежей выпечкой.", TasksCount: 4},
		{ID: 5, Name: "Чайная лавка", Emoji: "🫖", Location: "Тихий переулок", Price: 75, Reward: 20,
			Description: "Редкие сорта чая и варенье к чаю.", Atmosphere: "Пар поднимается над самоваром, звенят чашки.", TasksCount: 4},
		{ID: 6, Name: "Мастерская подарков", Emoji: "🎁", Location: "За катком", Price: 95, Reward: 22,
			Description: "Упаковка подарков с лентами и декором.", Atmosphere: "Шуршит бумага, блестят ленты и бусины.", TasksCount: 4},
		{ID: 7, Name: "Снежная почта", Emoji: "❄️", Location: "У северных ворот", Price: 120, Reward: 25,
			Description: "Открытки и посылки с зимними пожеланиями.", Atmosphere: "Конверты с морозными узорами ждут отправки.", TasksCount: 4},
	}
}

func defaultTasks() []*TaskSpec {
	twoSec := 2 * time.Second

	return []*TaskSpec{
		// Павильон 1 — Варежки и шарфы.
		{
			Task: domain.Task{ID: 1, PavilionID: 1, Name: "Подобрать варежки", Emoji: "🧤", Type: "choice", Reward: 10, FactID: 1},
			Choice: &ChoiceSpec{
				Prompt: "🧤 Подобрать варежки\n\nКлиент указывает на красные — нужно найти подходящие.\n\n🎯 Выбери цвет:",
				Options: []Option{
					{Value: "white", Label: "🤍 Белые"}, {Value: "red", Label: "🔴 Красные"},
					{Value: "blue", Label: "🔵 Синие"}, {Value: "black", Label: "⚫️ Чёрные"},
				},
				Correct:   "red",
				WrongText: "❌ Не тот цвет! Попробуй ещё раз.",
			},
		},
		{
			Task: domain.Task{ID: 2, PavilionID: 1, Name: "Собрать набор для катания", Emoji: "🎒", Type: "sequence", Reward: 10, FactID: 2},
			Sequence: &SequenceSpec{
				Mode: SequenceFixed,
				Steps: []SequenceStep{
					{Prompt: "🎒 Собрать набор для катания\n\nШаг 1/3: выбери шапку", Options: []Option{
						{Value: "hat", Label: "🧢 Шапка-ушанка"}, {Value: "wool_hat", Label: "🎩 Шерстяная"},
					}},
					{Prompt: "✅ Шапка выбрана\n\nШаг 2/3: выбери шарф", Options: []Option{
						{Value: "scarf", Label: "🧣 Шерстяной"}, {Value: "warm_scarf", Label: "🧣 Тёплый"},
					}},
					{Prompt: "✅ Шарф выбран\n\nШаг 3/3: выбери варежки", Options: []Option{
						{Value: "gloves", Label: "🧤 Тёплые"}, {Value: "wool_gloves", Label: "🧤 Шерстяные"},
					}},
				},
			},
		},
		{
			Task: domain.Task{ID: 3, PavilionID: 1, Name: "Проверить термометр", Emoji: "🌡", Type: "reaction", Reward: 10, FactID: 3},
			Reaction: &ReactionSpec{
				Intro: "🌡 Проверить термометр\n\nОтопление работает, температура медленно поднимается.\nДождись комфортных 22°C.\n\n🌡️ 15°C... ❄️",
				Stages: []ReactionStage{
					{Delay: twoSec, Text: "🌡 Проверить термометр\n\n🔥 Теплее становится...\n🌡️ 25°C...\n\n⏳ Ждём идеальной температуры..."},
				},
				PromptDelay: twoSec,
				Prompt:      "🌡 Проверить термометр\n\n✨ Идеальная температура!\n🌡️ 22°C ✅\n\n⚡ СЕЙЧАС!",
				HitLabel:    "✅ НАЖАТЬ!",
			},
		},
		{
			Task: domain.Task{ID: 4, PavilionID: 1, Name: "Найти нужный размер", Emoji: "🧣", Type: "choice", Reward: 10, FactID: 4},
			Choice: &ChoiceSpec{
				Prompt: "🧣 Найти нужный размер\n\nНужен размер M — средний, самый популярный.\n\n🎯 Выбери размер:",
				Options: []Option{
					{Value: "S", Label: "S"}, {Value: "M", Label: "M"},
					{Value: "L", Label: "L"}, {Value: "XL", Label: "XL"},
				},
				Correct:   "M",
				WrongText: "❌ Не тот размер! Попробуй ещё раз.",
			},
		},

		// Павильон 2 — Мороженое и какао.
		{
			Task: domain.Task{ID: 5, PavilionID: 2, Name: "Сделать эспрессо", Emoji: "☕️", Type: "reaction", Reward: 12, FactID: 5},
			Reaction: &ReactionSpec{
				Intro: "☕️ Сделать эспрессо\n\nКофе-машина готовит эспрессо. Следи за индикатором!\n\nИндикатор: ⚪️ Готовится...",
				Stages: []ReactionStage{
					{Delay: twoSec, Text: "☕️ Сделать эспрессо\n\nИндикатор: 🟡 Почти готово..."},
				},
				PromptDelay: twoSec,
				Prompt:      "☕️ Сделать эспрессо\n\nИндикатор: 🟢 ГОТОВО! ✅\n\n⚡ СЕЙЧАС!",
				HitLabel:    "☕️ НАЖАТЬ!",
			},
		},
		{
			Task: domain.Task{ID: 6, PavilionID: 2, Name: "Собрать порцию мороженого", Emoji: "🍦", Type: "choice", Reward: 12, FactID: 6},
			Choice: &ChoiceSpec{
				Prompt: "🍦 Собрать порцию мороженого\n\nВыбери сорт для порции в рожке.\n\n🎯 Сорт:",
				Options: []Option{
					{Value: "vanilla", Label: "🤍 Пломбир"}, {Value: "chocolate", Label: "🍫 Шоколадное"},
					{Value: "pistachio", Label: "🌰 Фисташковое"}, {Value: "strawberry", Label: "🍓 Клубничное"},
				},
				Next: &SequenceSpec{
					Mode: SequenceFixed,
					Steps: []SequenceStep{
						{Prompt: "✅ Сорт выбран!\n\nШаг 2/2: добавь топпинг", Options: []Option{
							{Value: "caramel", Label: "🍮 Карамель"}, {Value: "berries", Label: "🫐 Ягоды"},
						}},
					},
				},
			},
		},
		{
			Task: domain.Task{ID: 7, PavilionID: 2, Name: "Добавить топпинг", Emoji: "🍨", Type: "choice", Reward: 12, FactID: 7},
			Choice: &ChoiceSpec{
				Prompt: "🍨 Добавить топпинг\n\nВыбери топпинг для мороженого!",
				Options: []Option{
					{Value: "chocolate", Label: "🍫 Шоколадная крошка"}, {Value: "caramel", Label: "🍮 Карамель"},
					{Value: "berries", Label: "🫐 Свежие ягоды"}, {Value: "nuts", Label: "🥜 Орешки"},
				},
			},
		},
		{
			Task: domain.Task{ID: 8, PavilionID: 2, Name: "Вставить трубочку", Emoji: "🥤", Type: "reaction", Reward: 12, FactID: 8},
			Reaction: &ReactionSpec{
				Prompt:   "🥤 Вставить трубочку\n\nСтакан какао готов — добавь трубочку!",
				HitLabel: "🥤 Добавить",
				Instant:  true,
			},
		},

		// Павильон 3 — Ёлочные игрушки.
		{
			Task: domain.Task{ID: 9, PavilionID: 3, Name: "Повесить шары", Emoji: "🎄", Type: "choice", Reward: 15, FactID: 9},
			Choice: &ChoiceSpec{
				Prompt: "🎄 Повесить шары\n\nВыбери цвет ёлочного шара!",
				Options: []Option{
					{Value: "red", Label: "🔴 Красный"}, {Value: "gold", Label: "🟡 Золотой"},
					{Value: "blue", Label: "🔵 Синий"}, {Value: "silver", Label: "⚪️ Серебряный"},
				},
			},
		},
		{
			Task: domain.Task{ID: 10, PavilionID: 3, Name: "Наполнить вазу", Emoji: "🍊", Type: "sequence", Reward: 15, FactID: 10},
			Sequence: &SequenceSpec{
				Mode: SequenceRepeat,
				Repeat: &RepeatSpec{
					Prompt:      "🍊 Наполнить вазу\n\nДобавляй мандарины в вазу!\n\nДобавлено: %d/%d",
					Action:      "add",
					ActionLabel: "🍊 Добавить мандарин",
					Required:    7,
					DoneText:    "✅ Ваза наполнена!\n\nГотово!",
				},
			},
		},
		{
			Task: domain.Task{ID: 11, PavilionID: 3, Name: "Проверить гирлянду", Emoji: "💡", Type: "reaction", Reward: 15, FactID: 11},
			Reaction: &ReactionSpec{
				Intro: "💡 Проверить гирлянду\n\nГирлянда мигает — поймай момент, когда загорятся все огни!\n\nОгни: ⚫️⚫️⚫️",
				Stages: []ReactionStage{
					{Delay: twoSec, Text: "💡 Проверить гирлянду\n\nОгни: 🟡🟡⚫️"},
				},
				PromptDelay: twoSec,
				Prompt:      "💡 Проверить гирлянду\n\nОгни: 🟢🟢🟢 ✅\n\n⚡ СЕЙЧАС!",
				HitLabel:    "💡 НАЖАТЬ!",
			},
		},
		{
			Task: domain.Task{ID: 12, PavilionID: 3, Name: "Зажечь свечи", Emoji: "🔥", Type: "sequence", Reward: 15, FactID: 12},
			Sequence: &SequenceSpec{
				Mode: SequenceRepeat,
				Repeat: &RepeatSpec{
					Prompt:      "🔥 Зажечь свечи\n\nЗажигай свечи по порядку!\n\nЗажжено: %d/%d",
					Action:      "light",
					ActionLabel: "🔥 Зажечь свечу",
					Required:    5,
					DoneText:    "✅ Все свечи зажжены!\n\nГотово!",
				},
			},
		},

		// Павильон 4 — Пряничный домик.
		{
			Task: domain.Task{ID: 13, PavilionID: 4, Name: "Отмерить 500 г", Emoji: "⚖️", Type: "reaction", Reward: 18, FactID: 13},
			Reaction: &ReactionSpec{
				Intro: "⚖️ Отмерить 500 г\n\nПряники сыплются на весы. Останови поток на 500 граммах!\n\nВесы: 150 г...",
				Stages: []ReactionStage{
					{Delay: 1500 * time.Millisecond, Text: "⚖️ Отмерить 500 г\n\nВесы: 350 г..."},
				},
				PromptDelay: 1500 * time.Millisecond,
				Prompt:      "⚖️ Отмерить 500 г\n\nВесы: 500 г ✅\n\n⚡ СЕЙЧАС!",
				HitLabel:    "⚖️ НАЖАТЬ!",
			},
		},
		{
			Task: domain.Task{ID: 14, PavilionID: 4, Name: "Выбрать цветовую гамму", Emoji: "🎨", Type: "choice", Reward: 18, FactID: 14},
			Choice: &ChoiceSpec{
				Prompt: "🎨 Выбрать цветовую гамму\n\nПодбери три цвета глазури для набора пряников.",
				Options: []Option{
					{Value: "white", Label: "🤍 Белая"}, {Value: "pink", Label: "🩷 Розовая"},
					{Value: "green", Label: "💚 Зелёная"}, {Value: "gold", Label: "💛 Золотая"},
				},
				RequiredPicks: 3,
			},
		},
		{
			Task: domain.Task{ID: 15, PavilionID: 4, Name: "Собрать микс конфет", Emoji: "🍬", Type: "sequence", Reward: 18, FactID: 15},
			Sequence: &SequenceSpec{
				Mode: SequenceCategorized,
				Categories: &CategorizedSpec{
					Prompt: "🍬 Собрать микс конфет\n\nПо 2 каждого цвета!",
					Categories: []Category{
						{Value: "red", Label: "🔴 Красная", Cap: 2},
						{Value: "blue", Label: "🔵 Синяя", Cap: 2},
						{Value: "green", Label: "🟢 Зелёная", Cap: 2},
						{Value: "yellow", Label: "🟡 Жёлтая", Cap: 2},
					},
					DoneText: "✅ Микс собран!\n\nГотово!",
				},
			},
		},
		{
			Task: domain.Task{ID: 16, PavilionID: 4, Name: "Достать из духовки", Emoji: "🔥", Type: "reaction", Reward: 18, FactID: 16},
			Reaction: &ReactionSpec{
				Intro: "🔥 Достать из духовки\n\nПряники подрумяниваются. Не дай им сгореть!\n\nЦвет: светлые...",
				Stages: []ReactionStage{
					{Delay: twoSec, Text: "🔥 Достать из духовки\n\nЦвет: золотистые..."},
				},
				PromptDelay: twoSec,
				Prompt:      "🔥 Достать из духовки\n\nЦвет: румяные ✅\n\n⚡ СЕЙЧАС!",
				HitLabel:    "🔥 НАЖАТЬ!",
			},
		},

		// Павильон 5 — Чайная лавка.
		{
			Task: domain.Task{ID: 17, PavilionID: 5, Name: "Заварить чай", Emoji: "🫖", Type: "choice", Reward: 20, FactID: 17},
			Choice: &ChoiceSpec{
				Prompt: "🫖 Заварить чай\n\nКакой чай заварим гостю?",
				Options: []Option{
					{Value: "black", Label: "🫖 Чёрный"}, {Value: "green", Label: "🍵 Зелёный"},
					{Value: "herbal", Label: "🌿 Травяной"}, {Value: "ginger", Label: "🫚 Имбирный"},
				},
			},
		},
		{
			Task: domain.Task{ID: 18, PavilionID: 5, Name: "Найти редкий сорт", Emoji: "🔍", Type: "choice", Reward: 20, FactID: 18},
			Choice: &ChoiceSpec{
				Prompt: "🔍 Найти редкий сорт\n\nГде-то на полках спрятан «Морозный улун». Ищи!",
				Options: []Option{
					{Value: "shelf", Label: "📚 Верхняя полка"}, {Value: "box", Label: "📦 Коробка у окна"},
					{Value: "found", Label: "✨ Жестяная банка"}, {Value: "drawer", Label: "🗄 Ящик стола"},
				},
				Correct:   "found",
				WrongText: "Продолжай искать...",
			},
		},
		{
			Task: domain.Task{ID: 19, PavilionID: 5, Name: "Собрать набор «Москва»", Emoji: "📦", Type: "sequence", Reward: 20, FactID: 19},
			Sequence: &SequenceSpec{
				Mode: SequenceFixed,
				Steps: []SequenceStep{
					{Prompt: "📦 Собрать набор «Москва»\n\nШаг 1/3: выбери чай", Options: []Option{
						{Value: "tea", Label: "🫖 Московский"}, {Value: "classic", Label: "🫖 Классический"},
					}},
					{Prompt: "✅ Чай выбран!\n\nШаг 2/3: выбери сервиз", Options: []Option{
						{Value: "gzhel", Label: "🍵 Гжель"}, {Value: "classic", Label: "🍵 Классический"},
					}},
					{Prompt: "✅ Сервиз выбран!\n\nШаг 3/3: выбери варенье", Options: []Option{
						{Value: "raspberry", Label: "🫙 Малина"}, {Value: "sea_buckthorn", Label: "🫙 Облепиха"},
					}},
				},
			},
		},
		{
			Task: domain.Task{ID: 20, PavilionID: 5, Name: "Дождаться кипения", Emoji: "💨", Type: "reaction", Reward: 20, FactID: 20},
			Reaction: &ReactionSpec{
				Intro: "💨 Дождаться кипения\n\nСамовар набирает жар. Снимай чайник вовремя!\n\nТемпература: 60°C...",
				Stages: []ReactionStage{
					{Delay: twoSec, Text: "💨 Дождаться кипения\n\nТемпература: 85°C..."},
				},
				PromptDelay: twoSec,
				Prompt:      "💨 Дождаться кипения\n\nТемпература: 100°C 🔥\n\n⚡ СЕЙЧАС!",
				HitLabel:    "💨 НАЖАТЬ!",
			},
		},

		// Павильон 6 — Мастерская подарков.
		{
			Task: domain.Task{ID: 21, PavilionID: 6, Name: "Упаковать подарок", Emoji: "🎁", Type: "sequence", Reward: 22, FactID: 21},
			Sequence: &SequenceSpec{
				Mode: SequenceFixed,
				Steps: []SequenceStep{
					{Prompt: "🎁 Упаковать подарок\n\nШаг 1/5: выбери коробку", Options: []Option{
						{Value: "small", Label: "📦 Маленькая"}, {Value: "big", Label: "📦 Большая"},
					}},
					{Prompt: "✅ Коробка выбрана\n\nШаг 2/5: выбери бумагу", Options: []Option{
						{Value: "kraft", Label: "🟤 Крафт"}, {Value: "snow", Label: "❄️ Снежинки"},
					}},
					{Prompt: "✅ Бумага выбрана\n\nШаг 3/5: заверни коробку", Options: []Option{
						{Value: "wrap", Label: "🎁 Завернуть"},
					}},
					{Prompt: "✅ Коробка завёрнута\n\nШаг 4/5: выбери ленту", Options: []Option{
						{Value: "red", Label: "🎀 Красная"}, {Value: "gold", Label: "🎀 Золотая"},
					}},
					{Prompt: "✅ Лента завязана\n\nШаг 5/5: добавь бирку", Options: []Option{
						{Value: "tag", Label: "🏷 Добавить бирку"},
					}},
				},
			},
		},
		{
			Task: domain.Task{ID: 22, PavilionID: 6, Name: "Украсить декором", Emoji: "🎨", Type: "choice", Reward: 22, FactID: 22},
			Choice: &ChoiceSpec{
				Prompt: "🎨 Украсить декором\n\nВыбери 2 декоративных элемента для финального штриха.",
				Options: []Option{
					{Value: "cone", Label: "🌲 Шишка"}, {Value: "bead", Label: "🔵 Бусина"},
					{Value: "bell", Label: "🔔 Колокольчик"}, {Value: "star", Label: "⭐ Звезда"},
				},
				RequiredPicks: 2,
			},
		},
		{
			Task: domain.Task{ID: 23, PavilionID: 6, Name: "Посыпать снегом", Emoji: "❄️", Type: "reaction", Reward: 22, FactID: 23},
			Reaction: &ReactionSpec{
				Prompt:   "❄️ Посыпать снегом\n\nПодарок готов — добавь искусственный снег!",
				HitLabel: "❄️ Посыпать",
				Instant:  true,
			},
		},
		{
			Task: domain.Task{ID: 24, PavilionID: 6, Name: "Разгладить складки", Emoji: "🫳", Type: "sequence", Reward: 22, FactID: 24},
			Sequence: &SequenceSpec{
				Mode: SequenceRepeat,
				Repeat: &RepeatSpec{
					Prompt:      "🫳 Разгладить складки\n\nПроведи рукой по бумаге, пока она не станет ровной.\n\nРазглажено: %d/%d",
					Action:      "smooth",
					ActionLabel: "🫳 Разгладить",
					Required:    4,
					DoneText:    "✅ Бумага идеально ровная!\n\nГотово!",
				},
			},
		},

		// Павильон 7 — Снежная почта.
		{
			Task: domain.Task{ID: 25, PavilionID: 7, Name: "Выбрать открытку", Emoji: "💌", Type: "choice", Reward: 25, FactID: 25},
			Choice: &ChoiceSpec{
				Prompt: "💌 Выбрать открытку\n\nВыбери дизайн открытки!",
				Options: []Option{
					{Value: "newyear", Label: "🎄 Новогодняя"}, {Value: "winter", Label: "❄️ Зимняя"},
					{Value: "gift", Label: "🎁 Подарочная"},
				},
			},
		},
		{
			Task: domain.Task{ID: 26, PavilionID: 7, Name: "Отмерить ленту", Emoji: "📏", Type: "reaction", Reward: 25, FactID: 26},
			Reaction: &ReactionSpec{
				Intro: "📏 Отмерить ленту\n\nЛента тянется с катушки. Отрежь ровно метр!\n\nЛента: 40 см...",
				Stages: []ReactionStage{
					{Delay: twoSec, Text: "📏 Отмерить ленту\n\nЛента: 75 см..."},
				},
				PromptDelay: twoSec,
				Prompt:      "📏 Отмерить ленту\n\nЛента: 100 см ✅\n\n⚡ СЕЙЧАС!",
				HitLabel:    "📏 НАЖАТЬ!",
			},
		},
		{
			Task: domain.Task{ID: 27, PavilionID: 7, Name: "Подобрать аксессуары", Emoji: "🧷", Type: "sequence", Reward: 25, FactID: 27},
			Sequence: &SequenceSpec{
				Mode: SequenceFixed,
				Steps: []SequenceStep{
					{Prompt: "🧷 Подобрать аксессуары\n\nШаг 1/2: выбери сургучную печать", Options: []Option{
						{Value: "snowflake", Label: "❄️ Снежинка"}, {Value: "star", Label: "⭐ Звезда"},
					}},
					{Prompt: "✅ Печать выбрана\n\nШаг 2/2: выбери марку", Options: []Option{
						{Value: "deer", Label: "🦌 Олень"}, {Value: "tree", Label: "🎄 Ёлка"},
					}},
				},
			},
		},
		{
			Task: domain.Task{ID: 28, PavilionID: 7, Name: "Финальный штрих", Emoji: "✨", Type: "choice", Reward: 25, FactID: 28},
			Choice: &ChoiceSpec{
				Prompt: "✨ Финальный штрих\n\nДобавь последний штрих к посылке!",
				Options: []Option{
					{Value: "flower", Label: "🌸 Цветок"}, {Value: "bell", Label: "🔔 Бубенчик"},
					{Value: "none", Label: "✨ Без декора"},
				},
			},
		},
	}
}

func defaultFacts() []*domain.Fact {
	return []*domain.Fact{
		{ID: 1, PavilionID: 1, Text: "Варежки появились на Руси раньше перчаток: цельная форма лучше держит тепло."},
		{ID: 2, PavilionID: 1, Text: "Первые коньки привязывали к валенкам кожаными ремнями."},
		{ID: 3, PavilionID: 1, Text: "Комфортной для примерочных считается температура около 22 градусов."},
		{ID: 4, PavilionID: 1, Text: "Размер M остаётся самым продаваемым размером шарфов и свитеров."},
		{ID: 5, PavilionID: 2, Text: "Эспрессо готовится за 25–30 секунд — дольше значит горче."},
		{ID: 6, PavilionID: 2, Text: "Вафельный рожок придумали на ярмарке, когда у мороженщика закончились стаканчики."},
		{ID: 7, PavilionID: 2, Text: "Какао согревает дольше чая: жиры какао-бобов замедляют остывание."},
		{ID: 8, PavilionID: 2, Text: "Бумажные трубочки вернулись на смену пластиковым лишь недавно."},
		{ID: 9, PavilionID: 3, Text: "Первые ёлочные шары выдували из стекла в Германии XVI века."},
		{ID: 10, PavilionID: 3, Text: "Мандарины стали новогодним символом из-за зимнего сезона их сбора."},
		{ID: 11, PavilionID: 3, Text: "В классической гирлянде лампочки соединены последовательно: гаснет одна — гаснут все."},
		{ID: 12, PavilionID: 3, Text: "Свечи на ёлках зажигали задолго до изобретения электрических гирлянд."},
		{ID: 13, PavilionID: 4, Text: "Имбирные пряники выпекали как обереги и дарили на счастье."},
		{ID: 14, PavilionID: 4, Text: "Белую глазурь для пряников варят из сахара и яичного белка."},
		{ID: 15, PavilionID: 4, Text: "Леденцы на палочке продавали на ярмарках вразнос с лотков."},
		{ID: 16, PavilionID: 4, Text: "Пряничное тесто становится ароматнее, если отлежится сутки."},
		{ID: 17, PavilionID: 5, Text: "Чай попал в Москву в XVII веке как подарок царскому двору."},
		{ID: 18, PavilionID: 5, Text: "Улун окисляют лишь наполовину — между зелёным и чёрным чаем."},
		{ID: 19, PavilionID: 5, Text: "Гжельскую роспись наносят кобальтом: до обжига она чёрная, не синяя."},
		{ID: 20, PavilionID: 5, Text: "Самовар закипает быстрее чайника благодаря трубе-жаровне внутри."},
		{ID: 21, PavilionID: 6, Text: "Традицию заворачивать подарки в бумагу завели торговцы шёлком."},
		{ID: 22, PavilionID: 6, Text: "Колокольчики на подарках когда-то отпугивали злых духов."},
		{ID: 23, PavilionID: 6, Text: "Искусственный снег для витрин делают из целлюлозы."},
		{ID: 24, PavilionID: 6, Text: "Крафт-бумага прочнее обычной из-за длинных волокон сосны."},
		{ID: 25, PavilionID: 7, Text: "Первую новогоднюю открытку напечатали в Лондоне в 1843 году."},
		{ID: 26, PavilionID: 7, Text: "Атласные ленты отрезают раскалённым ножом, чтобы края не осыпались."},
		{ID: 27, PavilionID: 7, Text: "Сургучную печать ставили на письма задолго до появления конвертов."},
		{ID: 28, PavilionID: 7, Text: "Морозные узоры на стекле растут от пылинок и царапин."},
	}
}
