package bot

const msgPromptToStart = `ℹ️ Пожалуйста, начните игру с команды /start`

const msgQuestion = "❓ Вопрос %d из %d:\n\n<b>%s</b>"

const msgCorrect = `✅ Правильно!`

const msgIncorrect = "❌ Неправильно.\n✔️ Правильный ответ: <b>%s</b>"

const msgFinished = "🏁 Викторина окончена!\n🎯 Ваш результат: %d из %d"

const msgRestarted = `🔄 Игра перезапущена!`

const msgNewBest = `🎉 Новый рекорд!`

const msgTopHeader = "🏆 <b>Топ %d игроков</b>\n\n"

const msgTopEmpty = `🏆 Пока нет результатов. Будьте первым! 🎯`

const btnOption = `🔘 %s`

const btnPlayAgain = `🔄 Сыграть снова`
